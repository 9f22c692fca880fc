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

// RPE is a 1–11 subjective-effort score.
const (
	minRPE = 1
	maxRPE = 11
)

// FeedbackService records per-routine RPE values and free-text swap
// requests against a user's plans.
type FeedbackService interface {
	// RecordRPE stores an RPE value against one routine of one day. A day
	// or routine index that no longer matches the stored plan is silently
	// skipped: the caller may be submitting against a stale client-side
	// view, and that is not an error.
	RecordRPE(ctx context.Context, planID string, day string, routineIndex int, rpe float64) error

	// RecordSwapRequest replaces the active plan's swap-request list of the
	// given kind with a single-element list holding text. Only the most
	// recent request per kind survives.
	RecordSwapRequest(ctx context.Context, userID string, kind domain.SwapKind, text string) error
}

type feedbackService struct {
	planRepo repository.PlanRepository
	log      zerolog.Logger
}

// NewFeedbackService creates a new instance of feedbackService.
func NewFeedbackService(planRepo repository.PlanRepository, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		planRepo: planRepo,
		log:      logger.With().Str("component", "feedback").Logger(),
	}
}

func (s *feedbackService) RecordRPE(ctx context.Context, planID string, day string, routineIndex int, rpe float64) error {
	id, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return &schema.ValidationError{Reason: "planId is not a valid plan id"}
	}
	if rpe < minRPE || rpe > maxRPE {
		return &schema.ValidationError{Reason: "rpe must be between 1 and 11"}
	}
	if routineIndex < 0 {
		return &schema.ValidationError{Reason: "routineIndex must not be negative"}
	}

	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	updated := false
	for i, exercise := range plan.WorkoutPlan.Exercises {
		if exercise.Day != day {
			continue
		}
		if routineIndex >= len(exercise.Routines) {
			continue
		}
		value := rpe
		plan.WorkoutPlan.Exercises[i].Routines[routineIndex].RPE = &value
		updated = true
	}

	if !updated {
		// Stale day/index from the client; leave the plan untouched.
		s.log.Debug().
			Str("plan_id", planID).
			Str("day", day).
			Int("routine_index", routineIndex).
			Msg("rpe target not found in plan, skipping")
		return nil
	}

	return s.planRepo.ReplaceWorkoutPlan(ctx, id, plan.WorkoutPlan)
}

func (s *feedbackService) RecordSwapRequest(ctx context.Context, userID string, kind domain.SwapKind, text string) error {
	if userID == "" || text == "" {
		return &schema.ValidationError{Reason: "userId and text are required"}
	}
	if kind != domain.SwapExercise && kind != domain.SwapFood {
		return &schema.ValidationError{Reason: "kind must be \"exercise\" or \"food\""}
	}

	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoActivePlan
		}
		return err
	}

	return s.planRepo.ReplaceSwapRequests(ctx, plan.ID, kind, []string{text})
}
