package mail

import "errors"

// ErrNotConfigured is reported when host, sender or recipient is missing
var ErrNotConfigured = errors.New("smtp relay not configured")

// Status is the coarse result of a delivery attempt
type Status int

const (
	StatusDelivered Status = iota
	StatusNotConfigured
	StatusTransportFailed
)

func (s Status) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusNotConfigured:
		return "not_configured"
	case StatusTransportFailed:
		return "transport_failed"
	default:
		return "unknown"
	}
}

// Outcome describes one delivery attempt. Err is nil only when delivered.
type Outcome struct {
	Status Status
	Err    error
}

// Delivered collapses the outcome into the caller-visible flag
func (o Outcome) Delivered() bool {
	return o.Status == StatusDelivered
}

func delivered() Outcome {
	return Outcome{Status: StatusDelivered}
}

func notConfigured() Outcome {
	return Outcome{Status: StatusNotConfigured, Err: ErrNotConfigured}
}

func transportFailed(err error) Outcome {
	return Outcome{Status: StatusTransportFailed, Err: err}
}
