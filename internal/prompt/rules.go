package prompt

// The coaching rules below are interpolated into the prompts sent to the
// model. They are requests to the model, not constraints the service
// verifies; keeping them as data rather than inline string literals lets
// them be audited and tested independently of prompt phrasing.

// ProgressionRules drive week-over-week weight adjustment in the workout
// prompt, keyed off the RPE feedback recorded against the previous plan.
type ProgressionRules struct {
	// RPE above this means the load was too hard and must come down.
	RPETooHard float64
	// Inclusive RPE band considered optimal, rewarded with a small increase.
	RPEOptimalLow  float64
	RPEOptimalHigh float64
	// RPE below this gets only a very slight increase.
	RPETooEasy float64
	// Weekly working-weight increases are capped to this percent range.
	MaxWeeklyIncreasePercentLow  int
	MaxWeeklyIncreasePercentHigh int
	// Core lifts that must each appear at least once per week.
	CoreLifts []string
	// Minimum distinct exercises per training day.
	MinExercisesPerDay int
}

// NutritionRules drive the diet prompt.
type NutritionRules struct {
	// Daily protein target band, grams per kg of body weight.
	ProteinPerKgLow  float64
	ProteinPerKgHigh float64
	// Minimum number of main meals per day.
	MinMainMeals int
}

var DefaultProgression = ProgressionRules{
	RPETooHard:                   9,
	RPEOptimalLow:                7,
	RPEOptimalHigh:               8,
	RPETooEasy:                   6,
	MaxWeeklyIncreasePercentLow:  1,
	MaxWeeklyIncreasePercentHigh: 2,
	CoreLifts:                    []string{"Squat", "Bench Press", "Deadlift"},
	MinExercisesPerDay:           4,
}

var DefaultNutrition = NutritionRules{
	ProteinPerKgLow:  1.8,
	ProteinPerKgHigh: 2.2,
	MinMainMeals:     3,
}
