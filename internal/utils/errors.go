package utils

import (
	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling across the API.
// The failure is logged through logger; error details are only exposed outside release mode.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, code common.ErrorCode, message string) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	var details interface{}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		details = err.Error()
	}

	c.JSON(status, common.NewErrorResponse(code, message, details))
}
