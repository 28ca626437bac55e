package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the public contact form endpoint
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/contact",
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
