package middleware

import (
	"github.com/osa911/contactrelay/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLen = 128

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check for existing request ID in header
		requestID := c.GetHeader(constants.RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.RequestIDHeader, requestID)

		c.Next()
	}
}
