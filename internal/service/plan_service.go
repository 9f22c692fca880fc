package service

import (
	"context"
	"errors"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/repository"
	"liftai/coach-app/internal/schema"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanService serves plan queries and the administrative maintenance
// operations (individual and bulk deletes).
type PlanService interface {
	GetUserPlans(ctx context.Context, userID string) ([]domain.Plan, error)
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
	DeletePlan(ctx context.Context, planID string) error
	DeleteUserPlans(ctx context.Context, userID string) (int64, error)

	// PurgeMalformedPlans deletes every plan whose first meal carries a food
	// missing any of name/grams/protein. These predate strict diet
	// validation and break nutrition rendering.
	PurgeMalformedPlans(ctx context.Context) (int64, error)
}

type planService struct {
	planRepo repository.PlanRepository
	log      zerolog.Logger
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, logger zerolog.Logger) PlanService {
	return &planService{
		planRepo: planRepo,
		log:      logger.With().Str("component", "plans").Logger(),
	}
}

func (s *planService) GetUserPlans(ctx context.Context, userID string) ([]domain.Plan, error) {
	if userID == "" {
		return nil, &schema.ValidationError{Reason: "userId is required"}
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	id, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return nil, &schema.ValidationError{Reason: "planId is not a valid plan id"}
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeletePlan(ctx context.Context, planID string) error {
	id, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return &schema.ValidationError{Reason: "planId is not a valid plan id"}
	}
	err = s.planRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

func (s *planService) DeleteUserPlans(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, &schema.ValidationError{Reason: "userId is required"}
	}
	deleted, err := s.planRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("user_id", userID).Int64("deleted", deleted).Msg("deleted all plans for user")
	return deleted, nil
}

func (s *planService) PurgeMalformedPlans(ctx context.Context) (int64, error) {
	plans, err := s.planRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	var purged int64
	for _, plan := range plans {
		if !hasMalformedFood(plan) {
			continue
		}
		if err := s.planRepo.Delete(ctx, plan.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // already gone, fine
			}
			return purged, err
		}
		purged++
	}
	s.log.Info().Int64("purged", purged).Msg("purged malformed plans")
	return purged, nil
}

// hasMalformedFood inspects the first meal only, mirroring the shape check
// the UI depends on. Zero grams/protein counts as malformed the same way a
// missing field does.
func hasMalformedFood(plan domain.Plan) bool {
	if len(plan.DietPlan.Meals) == 0 {
		return false
	}
	for _, food := range plan.DietPlan.Meals[0].Foods {
		if food.Name == "" || food.Grams == 0 || food.Protein == 0 {
			return true
		}
	}
	return false
}
