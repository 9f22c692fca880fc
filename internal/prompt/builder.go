// Package prompt assembles the natural-language prompts sent to the
// generative model for workout and diet plan generation.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"liftai/coach-app/internal/domain"
)

// Params carries everything a prompt interpolates: user demographics,
// the previous week's plan (nil on week one) and the pending swap-request
// lists from the current request payload.
type Params struct {
	Age                 string
	Height              string
	Weight              string
	Gender              string
	Injuries            string
	WorkoutDays         string
	FitnessGoal         string
	FitnessLevel        string
	DietaryRestrictions string

	PreviousPlan    *domain.Plan
	WorkoutRequests []string // exercises the user asked to replace
	DietRequests    []string // foods the user asked to replace

	Progression ProgressionRules
	Nutrition   NutritionRules
}

// BuildWorkoutPrompt produces the workout-generation prompt, including the
// previous week's plan JSON (with recorded RPE values) when available.
func BuildWorkoutPrompt(p Params) string {
	var b strings.Builder

	b.WriteString("You are an elite AI powerlifting coach.\n\n")
	b.WriteString("Your job is to generate a progressive overload powerlifting training plan for the next week of a training block.\n")
	b.WriteString("The user already completed the previous week and submitted RPE values per exercise.\n")
	b.WriteString("Your goal is to create a more optimized and personalized plan, adjusting difficulty based on actual RPE feedback.\n\n")

	b.WriteString("--- USER INFO ---\n")
	fmt.Fprintf(&b, "Age: %s\n", p.Age)
	fmt.Fprintf(&b, "Height: %s\n", p.Height)
	fmt.Fprintf(&b, "Weight: %s\n", p.Weight)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Injuries or limitations: %s\n", p.Injuries)
	fmt.Fprintf(&b, "Experience level: %s\n", p.FitnessLevel)
	fmt.Fprintf(&b, "Goal: %s\n", p.FitnessGoal)
	fmt.Fprintf(&b, "Days available: %s\n\n", p.WorkoutDays)

	b.WriteString("--- USER CHANGE REQUESTS ---\n")
	if swaps := p.pendingWorkoutSwaps(); len(swaps) > 0 {
		fmt.Fprintf(&b, "• The user requested to replace the following exercises: %s.\n", strings.Join(swaps, ", "))
		b.WriteString("→ Replace each with a relevant alternative that trains the same muscle group or function.\n")
		b.WriteString("→ Ensure no exercise from this list appears in the new plan.\n")
	}
	b.WriteString("\n--- PREVIOUS PLAN DATA (RPE + Weights) ---\n")
	b.WriteString(previousWorkoutJSON(p.PreviousPlan))
	b.WriteString("\n\n")

	r := p.Progression
	b.WriteString("--- TRAINING STRATEGY RULES ---\n")
	b.WriteString("- Week 1 should be light.\n")
	b.WriteString("- From Week 2 and beyond, adjust **working_weights** based on the user's RPE per routine:\n")
	fmt.Fprintf(&b, "  • RPE > %g → reduce weight and/or lower volume (too hard)\n", r.RPETooHard)
	fmt.Fprintf(&b, "  • RPE %g–%g → small increase (optimal)\n", r.RPEOptimalLow, r.RPEOptimalHigh)
	fmt.Fprintf(&b, "  • RPE < %g → very slight increase\n", r.RPETooEasy)
	b.WriteString("- Weekly progress in weights must be **very mild**, no drastic jumps.\n")
	fmt.Fprintf(&b, "- Do not increase working_weights by more than %d–%d%% per week.\n",
		r.MaxWeeklyIncreasePercentLow, r.MaxWeeklyIncreasePercentHigh)
	b.WriteString("- Do not assume users improve quickly – progression should be conservative.\n")
	b.WriteString("- If an exercise had a very high RPE, reduce load next week.\n")
	b.WriteString("- Adjust sets/reps and weight accordingly.\n")
	b.WriteString("- Prevent overtraining. Avoid injury and fatigue.\n\n")

	b.WriteString("--- TECHNICAL RULES ---\n")
	fmt.Fprintf(&b, "- Only use these core lifts: %s\n", strings.Join(r.CoreLifts, ", "))
	b.WriteString("- Each core lift must appear at least once per week.\n")
	b.WriteString("- Do not repeat the same exercise within a single day.\n")
	fmt.Fprintf(&b, "- Each training day must include at least %d distinct exercises\n", r.MinExercisesPerDay)
	b.WriteString("- Add accessory lifts that support the core lifts.\n")
	b.WriteString("- Use only numeric values (no strings).\n")
	b.WriteString("- Do not add fields beyond those specified.\n\n")

	b.WriteString("--- FORMAT (MUST FOLLOW EXACTLY) ---\n")
	b.WriteString(`Return valid JSON:
{
  "schedule": ["Monday", "Wednesday", "Friday"],
  "exercises": [
    {
      "day": "Monday",
      "routines": [
        {
          "name": "Squat",
          "sets": 4,
          "reps": 5,
          "working_weights": 100
        },
        {
          "name": "Hamstring Curls",
          "sets": 3,
          "reps": 12,
          "working_weights": 35
        }
      ]
    }
  ]
}`)

	return b.String()
}

// BuildDietPrompt produces the diet-generation prompt.
func BuildDietPrompt(p Params) string {
	var b strings.Builder

	b.WriteString("You are an experienced AI nutrition coach.\n\n")
	b.WriteString("Your job is to generate a **personalized weekly diet plan** that supports the user's powerlifting goal, recovery, and muscle growth.\n\n")

	b.WriteString("--- USER INFO ---\n")
	fmt.Fprintf(&b, "Age: %s\n", p.Age)
	fmt.Fprintf(&b, "Height: %s\n", p.Height)
	fmt.Fprintf(&b, "Weight: %s\n", p.Weight)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Fitness goal: %s\n", p.FitnessGoal)
	fmt.Fprintf(&b, "Dietary restrictions: %s\n\n", p.DietaryRestrictions)

	b.WriteString("--- USER REQUESTS (FOOD CHANGES) ---\n")
	fmt.Fprintf(&b, "Current requested changes: %s\n", jsonList(p.DietRequests))
	if p.PreviousPlan != nil && len(p.PreviousPlan.NewDietPlan) > 0 {
		fmt.Fprintf(&b, "Previous plan change requests: %s\n", strings.Join(p.PreviousPlan.NewDietPlan, ", "))
	}
	b.WriteString(`
→ If any of the above arrays are **not empty**:
• Treat each item as a food the user wants to REMOVE from the diet.
• Replace it with a different food with similar **protein** and **nutritional value**.
• The replacement must comply with the user's dietary restrictions and support the same function in the meal.
• Do NOT include the removed items anywhere in the new plan.

`)

	n := p.Nutrition
	b.WriteString("--- NUTRITION STRATEGY RULES ---\n")
	b.WriteString("- Estimate daily calorie target based on user details and goal.\n")
	fmt.Fprintf(&b, "- Ensure daily **protein intake** is between **%g–%gg per kg of body weight**.\n",
		n.ProteinPerKgLow, n.ProteinPerKgHigh)
	fmt.Fprintf(&b, "- Include at least **%d main meals**: Breakfast, Lunch, Dinner.\n", n.MinMainMeals)
	b.WriteString("- Optionally include 1–2 **snack meals** (e.g., pre/post workout, evening snack).\n")
	b.WriteString("- Meals should be balanced, rich in protein, and support muscle recovery.\n")
	b.WriteString("- Avoid processed foods, keep it clean and performance-oriented.\n\n")

	b.WriteString("--- FORMAT RULES (STRICT) ---\n")
	b.WriteString("- Only return valid JSON (no extra text, markdown, comments).\n")
	b.WriteString(`- Structure must match EXACTLY:
{
  "dailyCalories": 2500,
  "meals": [
    {
      "name": "Breakfast",
      "foods": [
        { "name": "Oatmeal", "grams": 80, "protein": 10 },
        { "name": "Eggs", "grams": 120, "protein": 12 }
      ]
    }
  ]
}
- Each food must be an object: { name, grams, protein }
- Do NOT add any other keys (no fat, carbs, etc.)
- Output must be parseable JSON and follow this format precisely.`)

	return b.String()
}

// pendingWorkoutSwaps merges the request's exercise swap list with the one
// carried on the previous plan, oldest last, without duplicates.
func (p Params) pendingWorkoutSwaps() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(items []string) {
		for _, item := range items {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	add(p.WorkoutRequests)
	if p.PreviousPlan != nil {
		add(p.PreviousPlan.NewWorkoutPlan)
	}
	return out
}

func previousWorkoutJSON(prev *domain.Plan) string {
	if prev == nil {
		return "N/A"
	}
	data, err := json.Marshal(prev.WorkoutPlan)
	if err != nil {
		return "N/A"
	}
	return string(data)
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}
