// internal/api/feedback_handler.go
package api

import (
	"errors"
	"net/http"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/schema"
	"liftai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// --- DTOs ---

type RecordRPERequest struct {
	PlanID       string  `json:"planId" binding:"required"`
	Day          string  `json:"day" binding:"required"`
	RoutineIndex *int    `json:"routineIndex" binding:"required"`
	RPE          float64 `json:"rpe" binding:"required"`
}

type SwapRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Kind   string `json:"kind" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// --- Handler Methods ---

// RecordRPE godoc
// @Summary Record an RPE score for one routine
// @Description Stores the submitted effort score against a single routine of one training day. A day or index that no longer matches the plan is accepted and ignored.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body RecordRPERequest true "Plan, day, routine index and RPE value"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid request"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /feedback/rpe [post]
func (h *FeedbackHandler) RecordRPE(c *gin.Context) {
	var req RecordRPERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := h.feedbackService.RecordRPE(c.Request.Context(), req.PlanID, req.Day, *req.RoutineIndex, req.RPE)
	if err != nil {
		var ve *schema.ValidationError
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Plan not found.")
		case errors.As(err, &ve):
			abortWithError(c, http.StatusBadRequest, ve.Reason)
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record RPE.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecordSwap godoc
// @Summary Request an exercise or food swap
// @Description Replaces the active plan's pending swap request of the given kind with the submitted free-text request.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body SwapRequest true "User, swap kind and request text"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid request"
// @Failure 404 {object} gin.H "No active plan for user"
// @Router /feedback/swaps [post]
func (h *FeedbackHandler) RecordSwap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := h.feedbackService.RecordSwapRequest(c.Request.Context(), req.UserID, domain.SwapKind(req.Kind), req.Text)
	if err != nil {
		var ve *schema.ValidationError
		switch {
		case errors.Is(err, service.ErrNoActivePlan):
			abortWithError(c, http.StatusNotFound, "No active plan for this user.")
		case errors.As(err, &ve):
			abortWithError(c, http.StatusBadRequest, ve.Reason)
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record swap request.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
