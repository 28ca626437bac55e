package constants

// Context keys shared between middleware and handlers
const (
	// ContextKeySubmission holds the validated contact.Submission
	ContextKeySubmission = "contactSubmission"

	// ContextKeyRequestID holds the request correlation id
	ContextKeyRequestID = "requestID"
)

// RequestIDHeader is read from and echoed to clients
const RequestIDHeader = "X-Request-ID"
