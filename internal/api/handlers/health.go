package handlers

import (
	"github.com/osa911/contactrelay/internal/api/dto/health"
	"github.com/osa911/contactrelay/internal/utils"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/gin-gonic/gin"
)

// RelayStatus reports whether outgoing mail is configured
type RelayStatus interface {
	Configured() bool
}

type HealthHandler struct {
	relay RelayStatus
}

func NewHealthHandler(relay RelayStatus) *HealthHandler {
	return &HealthHandler{relay: relay}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, health.HealthResponse{
		Status:         "ok",
		SMTPConfigured: h.relay.Configured(),
		Version:        version.Version,
	})
}
