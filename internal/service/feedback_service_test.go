package service

import (
	"context"
	"testing"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/schema"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWorkoutPlan(repo *fakePlanRepo, userID string) *domain.Plan {
	id := repo.seed(domain.Plan{
		UserID:   userID,
		IsActive: true,
		WorkoutPlan: domain.WorkoutPlan{
			Schedule: []string{"Monday", "Thursday"},
			Exercises: []domain.ExerciseDay{
				{Day: "Monday", Routines: []domain.Routine{
					{Name: "Squat", Sets: 4, Reps: 5, WorkingWeights: 100},
					{Name: "Lunges", Sets: 3, Reps: 10, WorkingWeights: 40},
				}},
				{Day: "Thursday", Routines: []domain.Routine{
					{Name: "Bench Press", Sets: 4, Reps: 6, WorkingWeights: 80},
				}},
			},
		},
	})
	plan, _ := repo.GetByID(context.Background(), id)
	return plan
}

func TestRecordRPE(t *testing.T) {
	repo := newFakePlanRepo()
	plan := seedWorkoutPlan(repo, "user_123")
	svc := NewFeedbackService(repo, zerolog.Nop())

	err := svc.RecordRPE(context.Background(), plan.ID.Hex(), "Monday", 1, 8.5)

	require.NoError(t, err)
	stored, _ := repo.GetByID(context.Background(), plan.ID)
	require.NotNil(t, stored.WorkoutPlan.Exercises[0].Routines[1].RPE)
	assert.Equal(t, 8.5, *stored.WorkoutPlan.Exercises[0].Routines[1].RPE)
	// Sibling routines untouched.
	assert.Nil(t, stored.WorkoutPlan.Exercises[0].Routines[0].RPE)
	assert.Nil(t, stored.WorkoutPlan.Exercises[1].Routines[0].RPE)
}

func TestRecordRPEStaleTargetIsSilentlySkipped(t *testing.T) {
	repo := newFakePlanRepo()
	plan := seedWorkoutPlan(repo, "user_123")
	svc := NewFeedbackService(repo, zerolog.Nop())

	// Day no longer in the plan.
	require.NoError(t, svc.RecordRPE(context.Background(), plan.ID.Hex(), "Saturday", 0, 7))
	// Routine index beyond the day's list.
	require.NoError(t, svc.RecordRPE(context.Background(), plan.ID.Hex(), "Thursday", 5, 7))

	stored, _ := repo.GetByID(context.Background(), plan.ID)
	for _, day := range stored.WorkoutPlan.Exercises {
		for _, routine := range day.Routines {
			assert.Nil(t, routine.RPE)
		}
	}
}

func TestRecordRPEValidation(t *testing.T) {
	repo := newFakePlanRepo()
	plan := seedWorkoutPlan(repo, "user_123")
	svc := NewFeedbackService(repo, zerolog.Nop())

	var ve *schema.ValidationError

	err := svc.RecordRPE(context.Background(), "bogus-id", "Monday", 0, 8)
	assert.ErrorAs(t, err, &ve)

	err = svc.RecordRPE(context.Background(), plan.ID.Hex(), "Monday", 0, 0.5)
	assert.ErrorAs(t, err, &ve)

	err = svc.RecordRPE(context.Background(), plan.ID.Hex(), "Monday", 0, 12)
	assert.ErrorAs(t, err, &ve)

	err = svc.RecordRPE(context.Background(), plan.ID.Hex(), "Monday", -1, 8)
	assert.ErrorAs(t, err, &ve)
}

func TestRecordRPEPlanNotFound(t *testing.T) {
	svc := NewFeedbackService(newFakePlanRepo(), zerolog.Nop())

	err := svc.RecordRPE(context.Background(), "64b0c8f2a2b3c4d5e6f70809", "Monday", 0, 8)

	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRecordSwapRequestReplacesList(t *testing.T) {
	repo := newFakePlanRepo()
	plan := seedWorkoutPlan(repo, "user_123")
	svc := NewFeedbackService(repo, zerolog.Nop())

	require.NoError(t, svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapExercise, "replace squats"))
	require.NoError(t, svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapExercise, "replace lunges"))
	require.NoError(t, svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapFood, "no more tuna"))

	stored, _ := repo.GetByID(context.Background(), plan.ID)
	// Second exercise request replaced the first; lists never grow.
	assert.Equal(t, []string{"replace lunges"}, stored.NewWorkoutPlan)
	assert.Equal(t, []string{"no more tuna"}, stored.NewDietPlan)
}

func TestRecordSwapRequestNoActivePlan(t *testing.T) {
	repo := newFakePlanRepo()
	repo.seed(domain.Plan{UserID: "user_123", IsActive: false})
	svc := NewFeedbackService(repo, zerolog.Nop())

	err := svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapExercise, "anything")

	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestRecordSwapRequestValidation(t *testing.T) {
	repo := newFakePlanRepo()
	seedWorkoutPlan(repo, "user_123")
	svc := NewFeedbackService(repo, zerolog.Nop())

	var ve *schema.ValidationError

	err := svc.RecordSwapRequest(context.Background(), "", domain.SwapExercise, "text")
	assert.ErrorAs(t, err, &ve)

	err = svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapExercise, "")
	assert.ErrorAs(t, err, &ve)

	err = svc.RecordSwapRequest(context.Background(), "user_123", domain.SwapKind("cardio"), "text")
	assert.ErrorAs(t, err, &ve)
}
