package contact

import domain "github.com/osa911/contactrelay/internal/contact"

// ContactRequest is the JSON body of POST /api/contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submission converts the request into the domain type for validation
func (r ContactRequest) Submission() domain.Submission {
	return domain.Submission{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// ContactResponse acknowledges a submission; Delivered reports the relay outcome
type ContactResponse struct {
	OK        bool `json:"ok"`
	Delivered bool `json:"delivered"`
}
