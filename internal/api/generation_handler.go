// internal/api/generation_handler.go
package api

import (
	"net/http"

	"liftai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type GenerationHandler struct {
	generationService service.GenerationService
	log               zerolog.Logger
}

func NewGenerationHandler(generationService service.GenerationService, logger zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		log:               logger.With().Str("handler", "generation").Logger(),
	}
}

// --- DTOs ---

// GenerateProgramRequest carries the profile the prompts are built from.
// The swap lists stay untyped here; their shape is validated downstream so
// a malformed list produces the same response as any other generation
// failure instead of a binding error.
type GenerateProgramRequest struct {
	UserID              string `json:"user_id" binding:"required"`
	Age                 string `json:"age"`
	Height              string `json:"height"`
	Weight              string `json:"weight"`
	Gender              string `json:"gender"`
	Injuries            string `json:"injuries"`
	WorkoutDays         string `json:"workout_days"`
	FitnessGoal         string `json:"fitness_goal"`
	FitnessLevel        string `json:"fitness_level"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	PreviousPlanID      string `json:"previousPlanId"`
	NewWorkoutPlan      any    `json:"newWorkoutPlan"`
	NewDietPlan         any    `json:"newDietPlan"`
}

// --- Handler Methods ---

// GenerateProgram godoc
// @Summary Generate a new workout and diet plan
// @Description Builds prompts from the submitted profile, calls the model twice and stores the validated result as the user's active plan.
// @Tags Programs
// @Accept json
// @Produce json
// @Param request body GenerateProgramRequest true "User profile and plan context"
// @Success 200 {object} gin.H "Envelope with planId, workoutPlan and dietPlan"
// @Failure 400 {object} gin.H "Invalid request body"
// @Failure 500 {object} gin.H "Generation failed"
// @Router /programs/generate [post]
func (h *GenerationHandler) GenerateProgram(c *gin.Context) {
	var req GenerateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), service.GenerateParams{
		UserID:              req.UserID,
		Age:                 req.Age,
		Height:              req.Height,
		Weight:              req.Weight,
		Gender:              req.Gender,
		Injuries:            req.Injuries,
		WorkoutDays:         req.WorkoutDays,
		FitnessGoal:         req.FitnessGoal,
		FitnessLevel:        req.FitnessLevel,
		DietaryRestrictions: req.DietaryRestrictions,
		PreviousPlanID:      req.PreviousPlanID,
		NewWorkoutPlan:      req.NewWorkoutPlan,
		NewDietPlan:         req.NewDietPlan,
	})
	if err != nil {
		// Every generation failure collapses to the same generic response.
		// The cause (model error, bad JSON, storage failure) is logged only.
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("plan generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   service.ErrGenerationFailed.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
