// Package schema coerces and validates the loosely-typed JSON documents
// returned by the generative model into the strict domain plan shapes.
//
// The two validators are deliberately asymmetric: workout validation is
// lenient (best-effort coercion with defaults, never fails) because minor
// formatting noise in set/rep counts is tolerable, while diet validation is
// strict (fails on any malformed food) because downstream nutrition math
// must not run on partial data.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"liftai/coach-app/internal/domain"
)

// Coercion defaults applied when the model emits an unparsable value.
const (
	defaultSets           = 1
	defaultReps           = 10
	defaultWorkingWeights = 40
)

// ValidateWorkoutPlan coerces an arbitrary decoded JSON document into a
// WorkoutPlan. Numeric-string sets/reps/working_weights become integers;
// unparsable values fall back to defaults. It never fails: whatever shape
// the model produced is normalized field by field.
func ValidateWorkoutPlan(raw map[string]any) domain.WorkoutPlan {
	plan := domain.WorkoutPlan{
		Schedule:  toStringSlice(raw["schedule"]),
		Exercises: []domain.ExerciseDay{},
	}

	exercises, _ := raw["exercises"].([]any)
	for _, e := range exercises {
		day, _ := e.(map[string]any)
		if day == nil {
			continue
		}
		ex := domain.ExerciseDay{
			Day:      toString(day["day"]),
			Routines: []domain.Routine{},
		}
		routines, _ := day["routines"].([]any)
		for _, r := range routines {
			rt, _ := r.(map[string]any)
			if rt == nil {
				continue
			}
			ex.Routines = append(ex.Routines, domain.Routine{
				Name:           toString(rt["name"]),
				Sets:           coerceInt(rt["sets"], defaultSets),
				Reps:           coerceInt(rt["reps"], defaultReps),
				WorkingWeights: coerceInt(rt["working_weights"], defaultWorkingWeights),
			})
		}
		plan.Exercises = append(plan.Exercises, ex)
	}
	return plan
}

// ValidateDietPlan validates an arbitrary decoded JSON document as a
// DietPlan. It fails with a FormatError if meals is missing or not an
// array, or if any food item lacks any of name/grams/protein. Numeric
// fields are coerced from strings; every food round-trips exactly the
// three schema fields and nothing else.
func ValidateDietPlan(raw map[string]any) (domain.DietPlan, error) {
	meals, ok := raw["meals"].([]any)
	if !ok {
		return domain.DietPlan{}, &FormatError{Reason: "meals missing or not an array"}
	}

	calories, ok := coerceFloat(raw["dailyCalories"])
	if !ok {
		return domain.DietPlan{}, &FormatError{Reason: "dailyCalories is not numeric"}
	}

	plan := domain.DietPlan{
		DailyCalories: calories,
		Meals:         make([]domain.Meal, 0, len(meals)),
	}

	for i, m := range meals {
		mealDoc, ok := m.(map[string]any)
		if !ok {
			return domain.DietPlan{}, &FormatError{Reason: fmt.Sprintf("meal %d is not an object", i)}
		}
		foods, ok := mealDoc["foods"].([]any)
		if !ok {
			return domain.DietPlan{}, &FormatError{Reason: fmt.Sprintf("meal %d foods missing or not an array", i)}
		}

		meal := domain.Meal{
			Name:  toString(mealDoc["name"]),
			Foods: make([]domain.Food, 0, len(foods)),
		}
		for _, f := range foods {
			foodDoc, ok := f.(map[string]any)
			if !ok {
				return domain.DietPlan{}, &FormatError{Reason: "invalid food format, must be {name, grams, protein}"}
			}
			name, hasName := foodDoc["name"]
			rawGrams, hasGrams := foodDoc["grams"]
			rawProtein, hasProtein := foodDoc["protein"]
			if !hasName || !hasGrams || !hasProtein {
				return domain.DietPlan{}, &FormatError{Reason: "invalid food format, must be {name, grams, protein}"}
			}
			grams, ok := coerceFloat(rawGrams)
			if !ok {
				return domain.DietPlan{}, &FormatError{Reason: "food grams is not numeric"}
			}
			protein, ok := coerceFloat(rawProtein)
			if !ok {
				return domain.DietPlan{}, &FormatError{Reason: "food protein is not numeric"}
			}
			meal.Foods = append(meal.Foods, domain.Food{
				Name:    toString(name),
				Grams:   grams,
				Protein: protein,
			})
		}
		plan.Meals = append(plan.Meals, meal)
	}
	return plan, nil
}

// ValidateStringList normalizes an optional caller-supplied list. Absent
// input yields an empty list; anything other than a sequence of strings
// fails with a ValidationError.
func ValidateStringList(raw any, field string) ([]string, error) {
	if raw == nil {
		return []string{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Reason: field + " must be an array"}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ValidationError{Reason: field + " items must be strings"}
		}
		out = append(out, s)
	}
	return out, nil
}

// coerceInt converts JSON values to an int the way the prompt demands the
// model behave but it sometimes doesn't: numbers are truncated, numeric
// strings parsed, everything else falls back to def.
func coerceInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return def
	default:
		return def
	}
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func toStringSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, toString(item))
	}
	return out
}
