package utils

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/contact"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a 200 response with data as the body
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleValidationError sends a 422 response listing the invalid fields
func HandleValidationError(c *gin.Context, verr *contact.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity,
		common.NewErrorResponse(common.ErrCodeValidation, "Validation failed", verr.Fields))
}
