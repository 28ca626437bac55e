// Package contact validates contact-form submissions before they reach the relay.
package contact

import (
	"fmt"
	"strings"
)

// Field length bounds, counted in Unicode code points
const (
	NameMaxLen     = 200
	SubjectMaxLen  = 200
	MessageMinLen  = 10
	MessageMaxLen  = 5000
	EmailMaxLen    = 254
	defaultSubject = "New contact message from %s"
)

// Submission is a single contact-form message. It lives for one request only.
type Submission struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,max=254,email,contact_email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// MailSubject returns the subject line for the relayed email
func (s Submission) MailSubject() string {
	if s.Subject != "" {
		return s.Subject
	}
	return fmt.Sprintf(defaultSubject, s.Name)
}

// Constraint names the rule a field violated
type Constraint string

const (
	ConstraintMissing      Constraint = "missing"
	ConstraintTooShort     Constraint = "too_short"
	ConstraintTooLong      Constraint = "too_long"
	ConstraintInvalidEmail Constraint = "invalid_email"
	ConstraintInvalidType  Constraint = "invalid_type"
)

// FieldError describes one violated constraint
type FieldError struct {
	Field      string     `json:"field"`
	Constraint Constraint `json:"constraint"`
	Message    string     `json:"message"`
	Limit      int        `json:"limit,omitempty"`
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Constraint))
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

// Has reports whether field failed with the given constraint
func (e *ValidationError) Has(field string, constraint Constraint) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Constraint == constraint {
			return true
		}
	}
	return false
}
