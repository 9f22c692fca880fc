package service

import (
	"context"
	"errors"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/repository"

	"github.com/rs/zerolog"
)

// UserService applies identity-webhook events to the user collection.
type UserService interface {
	// SyncUser provisions a user record for a user.created event. Replayed
	// deliveries for an already-known user are a no-op.
	SyncUser(ctx context.Context, user domain.User) error

	// UpdateUser applies a user.updated event to an existing record.
	UpdateUser(ctx context.Context, user domain.User) error
}

type userService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      logger.With().Str("component", "users").Logger(),
	}
}

func (s *userService) SyncUser(ctx context.Context, user domain.User) error {
	_, err := s.userRepo.GetByExternalID(ctx, user.ExternalID)
	if err == nil {
		return nil // webhook redelivery, record already exists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if _, err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			// Concurrent redelivery lost the insert race; same no-op as above.
			return nil
		}
		return err
	}
	s.log.Info().Str("external_id", user.ExternalID).Msg("provisioned user from webhook")
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, user domain.User) error {
	err := s.userRepo.UpdateByExternalID(ctx, &user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
