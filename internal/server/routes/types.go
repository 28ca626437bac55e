package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"
	"github.com/osa911/contactrelay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains route-specific middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}
