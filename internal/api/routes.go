package api

import (
	"net/http"

	"liftai/coach-app/internal/service"
	"liftai/coach-app/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	verifier *webhook.Verifier,
	generationService service.GenerationService,
	feedbackService service.FeedbackService,
	planService service.PlanService,
	userService service.UserService,
	logger zerolog.Logger,
) {
	generationHandler := NewGenerationHandler(generationService, logger)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	planHandler := NewPlanHandler(planService)
	webhookHandler := NewWebhookHandler(userService, verifier, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/webhooks/identity", webhookHandler.HandleIdentityEvent)

		apiV1.POST("/programs/generate", generationHandler.GenerateProgram)

		feedbackGroup := apiV1.Group("/feedback")
		{
			feedbackGroup.POST("/rpe", feedbackHandler.RecordRPE)
			feedbackGroup.POST("/swaps", feedbackHandler.RecordSwap)
		}

		apiV1.GET("/users/:userId/plans", planHandler.GetUserPlans)
		apiV1.GET("/plans/:planId", planHandler.GetPlan)

		// Maintenance surface, token-gated.
		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(AdminAuthMiddleware(jwtSecret))
		{
			adminGroup.DELETE("/plans/:planId", planHandler.DeletePlan)
			adminGroup.DELETE("/users/:userId/plans", planHandler.DeleteUserPlans)
			adminGroup.POST("/plans/purge-malformed", planHandler.PurgeMalformedPlans)
		}
	}
}
