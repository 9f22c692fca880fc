package prompt

import (
	"strings"
	"testing"

	"liftai/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func baseParams() Params {
	return Params{
		Age:                 "29",
		Height:              "182cm",
		Weight:              "84kg",
		Gender:              "male",
		Injuries:            "none",
		WorkoutDays:         "4",
		FitnessGoal:         "Strength",
		FitnessLevel:        "intermediate",
		DietaryRestrictions: "lactose intolerant",
		Progression:         DefaultProgression,
		Nutrition:           DefaultNutrition,
	}
}

func TestBuildWorkoutPromptFirstWeek(t *testing.T) {
	p := baseParams()

	out := BuildWorkoutPrompt(p)

	assert.Contains(t, out, "Age: 29")
	assert.Contains(t, out, "Goal: Strength")
	assert.Contains(t, out, "Days available: 4")
	// No previous plan means no RPE context.
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "requested to replace")
	// Rule interpolation.
	assert.Contains(t, out, "RPE > 9")
	assert.Contains(t, out, "Squat, Bench Press, Deadlift")
	assert.Contains(t, out, "at least 4 distinct exercises")
}

func TestBuildWorkoutPromptWithPreviousPlan(t *testing.T) {
	rpe := 8.5
	p := baseParams()
	p.PreviousPlan = &domain.Plan{
		WorkoutPlan: domain.WorkoutPlan{
			Schedule: []string{"Monday"},
			Exercises: []domain.ExerciseDay{
				{Day: "Monday", Routines: []domain.Routine{
					{Name: "Squat", Sets: 4, Reps: 5, WorkingWeights: 100, RPE: &rpe},
				}},
			},
		},
		NewWorkoutPlan: []string{"Leg Extensions"},
	}
	p.WorkoutRequests = []string{"Barbell Rows", "Leg Extensions"}

	out := BuildWorkoutPrompt(p)

	// Previous plan serialized with its RPE value.
	assert.Contains(t, out, `"name":"Squat"`)
	assert.Contains(t, out, `"rpe":8.5`)
	// Swap lists merged without the duplicate.
	assert.Contains(t, out, "Barbell Rows, Leg Extensions")
	assert.Equal(t, 1, strings.Count(out, "Leg Extensions"))
}

func TestBuildDietPrompt(t *testing.T) {
	p := baseParams()
	p.DietRequests = []string{"cottage cheese"}
	p.PreviousPlan = &domain.Plan{NewDietPlan: []string{"tuna"}}

	out := BuildDietPrompt(p)

	assert.Contains(t, out, "Dietary restrictions: lactose intolerant")
	assert.Contains(t, out, `["cottage cheese"]`)
	assert.Contains(t, out, "Previous plan change requests: tuna")
	assert.Contains(t, out, "protein intake** is between **1.8–2.2g")
	assert.Contains(t, out, "at least **3 main meals**")
	assert.Contains(t, out, `"dailyCalories": 2500`)
}

func TestBuildDietPromptEmptyRequests(t *testing.T) {
	out := BuildDietPrompt(baseParams())

	assert.Contains(t, out, "Current requested changes: []")
	assert.NotContains(t, out, "Previous plan change requests")
}
