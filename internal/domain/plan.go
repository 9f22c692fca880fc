package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SwapKind distinguishes the two free-text swap-request lists on a plan.
type SwapKind string

const (
	SwapExercise SwapKind = "exercise"
	SwapFood     SwapKind = "food"
)

// Plan is a generated weekly training + diet program for one user.
// At most one plan per user may have IsActive set at any time.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"` // external identity id, matches User.ExternalID
	Name        string             `bson:"name" json:"name"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"`
	WorkoutPlan WorkoutPlan        `bson:"workoutPlan" json:"workoutPlan"`
	DietPlan    DietPlan           `bson:"dietPlan" json:"dietPlan"`
	// Latest free-text swap requests. Each holds at most one entry: recording
	// a new request replaces the list, it does not append.
	NewWorkoutPlan []string  `bson:"newWorkoutPlan,omitempty" json:"newWorkoutPlan,omitempty"`
	NewDietPlan    []string  `bson:"newDietPlan,omitempty" json:"newDietPlan,omitempty"`
	IsActive       bool      `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// WorkoutPlan is the weekly training schedule returned by the model.
type WorkoutPlan struct {
	Schedule  []string      `bson:"schedule" json:"schedule"` // ordered day names
	Exercises []ExerciseDay `bson:"exercises" json:"exercises"`
}

// ExerciseDay holds the ordered routines for one scheduled day.
type ExerciseDay struct {
	Day      string    `bson:"day" json:"day"`
	Routines []Routine `bson:"routines" json:"routines"`
}

// Routine is a single exercise prescription. RPE is filled in later from
// user feedback, never by the model.
type Routine struct {
	Name           string   `bson:"name" json:"name"`
	Sets           int      `bson:"sets" json:"sets"`
	Reps           int      `bson:"reps" json:"reps"`
	WorkingWeights int      `bson:"working_weights" json:"working_weights"`
	RPE            *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
}

// DietPlan is the weekly nutrition plan returned by the model.
type DietPlan struct {
	DailyCalories float64 `bson:"dailyCalories" json:"dailyCalories"`
	Meals         []Meal  `bson:"meals" json:"meals"`
}

type Meal struct {
	Name  string `bson:"name" json:"name"`
	Foods []Food `bson:"foods" json:"foods"`
}

// Food carries exactly name, grams and protein. The diet validator rejects
// model output where any of the three is missing.
type Food struct {
	Name    string  `bson:"name" json:"name"`
	Grams   float64 `bson:"grams" json:"grams"`
	Protein float64 `bson:"protein" json:"protein"`
}
