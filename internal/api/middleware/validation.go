package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/common"
	contactdto "github.com/osa911/contactrelay/internal/api/dto/contact"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes bounds the contact request body
const DefaultMaxBodyBytes int64 = 64 << 10

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator    *contact.Validator
	logger       *logging.Logger
	maxBodyBytes int64
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(v *contact.Validator, logger *logging.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator:    v,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// ValidateContactRequest decodes and validates the contact form body.
// On success the contact.Submission is stored under ContextKeySubmission.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxBodyBytes)

		var req contactdto.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.HandleAPIError(c, m.logger, err, http.StatusRequestEntityTooLarge, common.ErrCodePayloadTooLarge,
					fmt.Sprintf("Request body exceeds %d bytes", m.maxBodyBytes))
				c.Abort()
				return
			}
			utils.HandleValidationError(c, decodeError(err))
			c.Abort()
			return
		}

		sub, err := m.validator.Validate(req.Submission())
		if err != nil {
			var verr *contact.ValidationError
			if errors.As(err, &verr) {
				utils.HandleValidationError(c, verr)
			} else {
				utils.HandleAPIError(c, m.logger, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to validate request")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySubmission, sub)
		c.Next()
	}
}

// decodeError maps a JSON decoding failure onto field-level detail
func decodeError(err error) *contact.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &contact.ValidationError{Fields: []contact.FieldError{{
			Field:      typeErr.Field,
			Constraint: contact.ConstraintInvalidType,
			Message:    fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type),
		}}}
	}
	return &contact.ValidationError{Fields: []contact.FieldError{{
		Field:      "body",
		Constraint: contact.ConstraintInvalidType,
		Message:    "request body must be a JSON object",
	}}}
}
