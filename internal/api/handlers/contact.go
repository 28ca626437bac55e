package handlers

import (
	"context"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/common"
	contactdto "github.com/osa911/contactrelay/internal/api/dto/contact"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Sender delivers a validated submission; *mail.Relay implements it
type Sender interface {
	Send(ctx context.Context, sub contact.Submission) mail.Outcome
}

type ContactHandler struct {
	sender Sender
	logger *logging.Logger
}

func NewContactHandler(sender Sender, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		sender: sender,
		logger: logger,
	}
}

// Submit relays the submission stored by ValidateContactRequest.
// The response is 200 whatever the relay outcome; only the delivered flag differs.
func (h *ContactHandler) Submit(c *gin.Context) {
	value, exists := c.Get(constants.ContextKeySubmission)
	if !exists {
		utils.HandleAPIError(c, h.logger, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return
	}

	sub, ok := value.(contact.Submission)
	if !ok {
		utils.HandleAPIError(c, h.logger, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	// The submitter going away must not abort a delivery already under way;
	// the relay bounds the session with its own timeout.
	outcome := h.sender.Send(context.WithoutCancel(c.Request.Context()), sub)

	requestID := c.GetString(constants.ContextKeyRequestID)
	switch outcome.Status {
	case mail.StatusDelivered:
		h.logger.Info("Contact message relayed (request %s)", requestID)
	case mail.StatusNotConfigured:
		h.logger.Warn("Contact message accepted but not relayed (request %s): %v", requestID, outcome.Err)
	default:
		h.logger.Error("Contact message relay failed (request %s): %v", requestID, outcome.Err)
	}

	utils.HandleSuccess(c, contactdto.ContactResponse{
		OK:        true,
		Delivered: outcome.Delivered(),
	})
}
