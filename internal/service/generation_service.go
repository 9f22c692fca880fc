package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"liftai/coach-app/internal/ai"
	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/prompt"
	"liftai/coach-app/internal/repository"
	"liftai/coach-app/internal/schema"
	"liftai/coach-app/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateParams is the payload for one plan-generation request.
// Demographic fields are free text, interpolated into the prompts as-is.
// The two swap-request lists arrive untyped so list-shape validation stays
// in one place (the schema package) instead of in binding tags.
type GenerateParams struct {
	UserID              string
	Age                 string
	Height              string
	Weight              string
	Gender              string
	Injuries            string
	WorkoutDays         string
	FitnessGoal         string
	FitnessLevel        string
	DietaryRestrictions string
	PreviousPlanID      string
	NewWorkoutPlan      any
	NewDietPlan         any
}

// GenerateResult is what a successful generation returns to the caller.
type GenerateResult struct {
	PlanID      string             `json:"planId"`
	WorkoutPlan domain.WorkoutPlan `json:"workoutPlan"`
	DietPlan    domain.DietPlan    `json:"dietPlan"`
}

// GenerationService orchestrates one full plan generation: prompt
// construction, two sequential model calls, schema validation and
// persistence of the new active plan.
type GenerationService interface {
	Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error)
}

type generationService struct {
	planRepo    repository.PlanRepository
	generator   ai.Generator
	archive     storage.TranscriptArchive // nil disables archiving
	progression prompt.ProgressionRules
	nutrition   prompt.NutritionRules
	log         zerolog.Logger
}

// NewGenerationService creates a new instance of generationService.
// archive may be nil when no transcript bucket is configured.
func NewGenerationService(
	planRepo repository.PlanRepository,
	generator ai.Generator,
	archive storage.TranscriptArchive,
	logger zerolog.Logger,
) GenerationService {
	return &generationService{
		planRepo:    planRepo,
		generator:   generator,
		archive:     archive,
		progression: prompt.DefaultProgression,
		nutrition:   prompt.DefaultNutrition,
		log:         logger.With().Str("component", "generation").Logger(),
	}
}

func (s *generationService) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	if params.UserID == "" {
		return nil, &schema.ValidationError{Reason: "user_id is required"}
	}

	workoutSwaps, err := schema.ValidateStringList(params.NewWorkoutPlan, "newWorkoutPlan")
	if err != nil {
		return nil, err
	}
	dietSwaps, err := schema.ValidateStringList(params.NewDietPlan, "newDietPlan")
	if err != nil {
		return nil, err
	}

	previous, err := s.fetchPreviousPlan(ctx, params.PreviousPlanID)
	if err != nil {
		return nil, err
	}

	promptParams := prompt.Params{
		Age:                 params.Age,
		Height:              params.Height,
		Weight:              params.Weight,
		Gender:              params.Gender,
		Injuries:            params.Injuries,
		WorkoutDays:         params.WorkoutDays,
		FitnessGoal:         params.FitnessGoal,
		FitnessLevel:        params.FitnessLevel,
		DietaryRestrictions: params.DietaryRestrictions,
		PreviousPlan:        previous,
		WorkoutRequests:     workoutSwaps,
		DietRequests:        dietSwaps,
		Progression:         s.progression,
		Nutrition:           s.nutrition,
	}

	// The two model calls run sequentially even though the diet prompt does
	// not depend on the workout result.
	workoutPrompt := prompt.BuildWorkoutPrompt(promptParams)
	workoutText, err := s.generator.Generate(ctx, workoutPrompt)
	if err != nil {
		return nil, &UpstreamError{Op: "workout generation", Err: err}
	}

	var rawWorkout map[string]any
	if err := json.Unmarshal([]byte(workoutText), &rawWorkout); err != nil {
		s.log.Error().Err(err).Str("raw", workoutText).Msg("workout plan text did not parse as JSON")
		return nil, &schema.FormatError{Reason: "workout plan is not valid JSON", Raw: workoutText}
	}
	workoutPlan := schema.ValidateWorkoutPlan(rawWorkout)

	dietPrompt := prompt.BuildDietPrompt(promptParams)
	dietText, err := s.generator.Generate(ctx, dietPrompt)
	if err != nil {
		return nil, &UpstreamError{Op: "diet generation", Err: err}
	}

	var rawDiet map[string]any
	if err := json.Unmarshal([]byte(dietText), &rawDiet); err != nil {
		s.log.Error().Err(err).Str("raw", dietText).Msg("diet plan text did not parse as JSON")
		return nil, &schema.FormatError{Reason: "diet plan is not valid JSON", Raw: dietText}
	}
	// Early sanity check before full validation: the first meal's first food
	// must at least carry a name, otherwise the model ignored the format.
	if !firstFoodHasName(rawDiet) {
		s.log.Error().Str("raw", dietText).Msg("diet plan missing food details")
		return nil, &schema.FormatError{Reason: "diet plan missing food details", Raw: dietText}
	}
	dietPlan, err := schema.ValidateDietPlan(rawDiet)
	if err != nil {
		var fe *schema.FormatError
		if errors.As(err, &fe) {
			fe.Raw = dietText
		}
		s.log.Error().Err(err).Str("raw", dietText).Msg("diet plan failed schema validation")
		return nil, err
	}

	plan := &domain.Plan{
		UserID:         params.UserID,
		Name:           fmt.Sprintf("%s Plan - %s", params.FitnessGoal, time.Now().Format("1/2/2006")),
		Gender:         params.Gender,
		WorkoutPlan:    workoutPlan,
		DietPlan:       dietPlan,
		NewWorkoutPlan: workoutSwaps,
		NewDietPlan:    dietSwaps,
	}

	planID, err := s.planRepo.CreateActive(ctx, plan)
	if err != nil {
		return nil, &UpstreamError{Op: "plan persistence", Err: err}
	}

	s.archiveTranscript(ctx, params.UserID, planID.Hex(), workoutPrompt, workoutText, dietPrompt, dietText)

	s.log.Info().
		Str("user_id", params.UserID).
		Str("plan_id", planID.Hex()).
		Msg("generated new active plan")

	return &GenerateResult{
		PlanID:      planID.Hex(),
		WorkoutPlan: workoutPlan,
		DietPlan:    dietPlan,
	}, nil
}

// fetchPreviousPlan loads the prior plan for prompt context. A plan that
// simply no longer exists means "no prior context"; only a failing fetch
// aborts the request.
func (s *generationService) fetchPreviousPlan(ctx context.Context, previousPlanID string) (*domain.Plan, error) {
	if previousPlanID == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(previousPlanID)
	if err != nil {
		return nil, &schema.ValidationError{Reason: "previousPlanId is not a valid plan id"}
	}
	previous, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, &UpstreamError{Op: "previous plan fetch", Err: err}
	}
	return previous, nil
}

func firstFoodHasName(rawDiet map[string]any) bool {
	meals, _ := rawDiet["meals"].([]any)
	if len(meals) == 0 {
		return false
	}
	meal, _ := meals[0].(map[string]any)
	if meal == nil {
		return false
	}
	foods, _ := meal["foods"].([]any)
	if len(foods) == 0 {
		return false
	}
	food, _ := foods[0].(map[string]any)
	if food == nil {
		return false
	}
	// Any non-falsy name passes; full validation stringifies odd types later.
	switch name := food["name"].(type) {
	case nil:
		return false
	case string:
		return name != ""
	case bool:
		return name
	case float64:
		return name != 0
	default:
		return true
	}
}

// archiveTranscript stores the raw prompts and model output for
// diagnostics. Best effort only; the plan is already persisted.
func (s *generationService) archiveTranscript(ctx context.Context, userID, planID, workoutPrompt, workoutText, dietPrompt, dietText string) {
	if s.archive == nil {
		return
	}
	doc := map[string]any{
		"generatedAt": time.Now().UTC(),
		"userId":      userID,
		"planId":      planID,
		"workout":     map[string]string{"prompt": workoutPrompt, "response": workoutText},
		"diet":        map[string]string{"prompt": dietPrompt, "response": dietText},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal transcript")
		return
	}
	key := fmt.Sprintf("transcripts/%s/%s.json", userID, uuid.NewString())
	if err := s.archive.Save(ctx, key, body); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to archive transcript")
	}
}
