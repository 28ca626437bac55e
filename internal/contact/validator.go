package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks raw submissions against the field constraints
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the contact rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("contact_email", validateEmail); err != nil {
		panic(fmt.Sprintf("register contact_email: %v", err))
	}
	return &Validator{validate: v}
}

// Validate returns the submission unchanged when it satisfies every constraint,
// or a *ValidationError naming each offending field.
func (v *Validator) Validate(raw Submission) (Submission, error) {
	err := v.validate.Struct(raw)
	if err == nil {
		return raw, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Submission{}, fmt.Errorf("validate submission: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, toFieldError(fe))
	}
	return Submission{}, verr
}

// validateEmail narrows the built-in email rule to a dotted domain without
// empty labels, so "jo@localhost" and "jo@example.com." are rejected.
func validateEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.Contains(domain, "..") {
		return false
	}
	return !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func toFieldError(fe validator.FieldError) FieldError {
	field := fe.Field()
	limit, _ := strconv.Atoi(fe.Param())

	switch fe.Tag() {
	case "required":
		return FieldError{Field: field, Constraint: ConstraintMissing, Message: field + " is required"}
	case "min":
		return FieldError{
			Field:      field,
			Constraint: ConstraintTooShort,
			Message:    fmt.Sprintf("%s must be at least %d characters", field, limit),
			Limit:      limit,
		}
	case "max":
		return FieldError{
			Field:      field,
			Constraint: ConstraintTooLong,
			Message:    fmt.Sprintf("%s must be at most %d characters", field, limit),
			Limit:      limit,
		}
	case "email", "contact_email":
		return FieldError{Field: field, Constraint: ConstraintInvalidEmail, Message: field + " must be a valid email address"}
	default:
		return FieldError{Field: field, Constraint: Constraint(fe.Tag()), Message: fe.Error()}
	}
}
