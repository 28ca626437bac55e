package routes

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/common"
	"github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact, m)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Route not found", nil))
	})
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, logRequests bool) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger, logRequests))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
}
