// internal/api/plan_handler.go
package api

import (
	"errors"
	"net/http"

	"liftai/coach-app/internal/schema"
	"liftai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Handler Methods ---

// GetUserPlans godoc
// @Summary List a user's plans
// @Description Returns all plans for the user, newest first, including inactive ones.
// @Tags Plans
// @Produce json
// @Param userId path string true "External user ID"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Missing user ID"
// @Router /users/{userId}/plans [get]
func (h *PlanHandler) GetUserPlans(c *gin.Context) {
	userID := c.Param("userId")

	plans, err := h.planService.GetUserPlans(c.Request.Context(), userID)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			abortWithError(c, http.StatusBadRequest, ve.Reason)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plans})
}

// GetPlan godoc
// @Summary Get a single plan
// @Tags Plans
// @Produce json
// @Param planId path string true "Plan ObjectID Hex"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid plan ID"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Request.Context(), c.Param("planId"))
	if err != nil {
		var ve *schema.ValidationError
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Plan not found.")
		case errors.As(err, &ve):
			abortWithError(c, http.StatusBadRequest, ve.Reason)
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plan})
}

// DeletePlan godoc
// @Summary Delete one plan (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ObjectID Hex"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H "Plan not found"
// @Router /admin/plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	err := h.planService.DeletePlan(c.Request.Context(), c.Param("planId"))
	if err != nil {
		var ve *schema.ValidationError
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Plan not found.")
		case errors.As(err, &ve):
			abortWithError(c, http.StatusBadRequest, ve.Reason)
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUserPlans godoc
// @Summary Delete every plan of a user (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "External user ID"
// @Success 200 {object} gin.H "Number of deleted plans"
// @Router /admin/users/{userId}/plans [delete]
func (h *PlanHandler) DeleteUserPlans(c *gin.Context) {
	deleted, err := h.planService.DeleteUserPlans(c.Request.Context(), c.Param("userId"))
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			abortWithError(c, http.StatusBadRequest, ve.Reason)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plans.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// PurgeMalformedPlans godoc
// @Summary Purge plans with malformed diet data (admin)
// @Description Scans all stored plans and deletes those whose first meal carries a food missing name, grams or protein.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Number of purged plans"
// @Router /admin/plans/purge-malformed [post]
func (h *PlanHandler) PurgeMalformedPlans(c *gin.Context) {
	purged, err := h.planService.PurgeMalformedPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to purge plans.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "purged": purged})
}
