package repository

import (
	"context"

	"liftai/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrDeleteFailed  = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user records.
// Users are written only by the identity webhook.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	UpdateByExternalID(ctx context.Context, user *domain.User) error
}

// PlanRepository defines the interface for interacting with plan documents.
type PlanRepository interface {
	// CreateActive inserts the plan with isActive=true and, within the same
	// transaction, deactivates every other plan owned by the same user so
	// the single-active-plan invariant holds with no intermediate window.
	CreateActive(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Plan, error)
	GetActiveByUserID(ctx context.Context, userID string) (*domain.Plan, error)
	GetAll(ctx context.Context) ([]domain.Plan, error)

	// ReplaceWorkoutPlan overwrites the embedded workout plan document,
	// used when RPE feedback is recorded against a routine.
	ReplaceWorkoutPlan(ctx context.Context, id primitive.ObjectID, workout domain.WorkoutPlan) error

	// ReplaceSwapRequests replaces (never appends to) the swap-request list
	// of the given kind.
	ReplaceSwapRequests(ctx context.Context, id primitive.ObjectID, kind domain.SwapKind, items []string) error

	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
