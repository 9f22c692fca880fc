// internal/api/webhook_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/service"
	"liftai/coach-app/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type WebhookHandler struct {
	userService service.UserService
	verifier    *webhook.Verifier
	log         zerolog.Logger
}

func NewWebhookHandler(userService service.UserService, verifier *webhook.Verifier, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		userService: userService,
		verifier:    verifier,
		log:         logger.With().Str("handler", "webhook").Logger(),
	}
}

// identityEvent is the provider's webhook envelope. Only the fields we
// project onto a user record are decoded.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleIdentityEvent godoc
// @Summary Receive identity-provider webhook deliveries
// @Description Verifies the delivery signature and applies user.created / user.updated events. Unknown event types are acknowledged and ignored.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid signature or payload"
// @Router /webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Failed to read request body.")
		return
	}

	err = h.verifier.Verify(
		payload,
		c.GetHeader("svix-id"),
		c.GetHeader("svix-timestamp"),
		c.GetHeader("svix-signature"),
	)
	if err != nil {
		// No user data is touched on a failed verification.
		h.log.Warn().Err(err).Msg("rejected webhook delivery")
		abortWithError(c, http.StatusBadRequest, "Invalid webhook signature.")
		return
	}

	var event identityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid webhook payload.")
		return
	}

	switch event.Type {
	case "user.created":
		err = h.userService.SyncUser(c.Request.Context(), eventToUser(event))
	case "user.updated":
		err = h.userService.UpdateUser(c.Request.Context(), eventToUser(event))
	default:
		h.log.Debug().Str("type", event.Type).Msg("ignoring webhook event type")
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Str("external_id", event.Data.ID).Msg("failed to apply webhook event")
		abortWithError(c, http.StatusInternalServerError, "Failed to process webhook event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func eventToUser(event identityEvent) domain.User {
	user := domain.User{
		ExternalID: event.Data.ID,
		Name:       strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName),
		AvatarURL:  event.Data.ImageURL,
	}
	if len(event.Data.EmailAddresses) > 0 {
		user.Email = event.Data.EmailAddresses[0].EmailAddress
	}
	return user
}
