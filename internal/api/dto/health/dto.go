package health

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	SMTPConfigured bool   `json:"smtp_configured"`
	Version        string `json:"version"`
}
