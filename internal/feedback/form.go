// Package feedback handles the visitor feedback form. Submissions are
// validated and acknowledged but not stored or sent anywhere.
package feedback

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	fotierrors "github.com/foti-africa/foti-web/internal/errors"
)

// Type categorizes a feedback submission.
type Type string

const (
	TypeSuggestion Type = "Suggestion"
	TypeIssue      Type = "Issue"
	TypeOther      Type = "Other"
)

// Types lists the form's type options in display order.
var Types = []Type{TypeSuggestion, TypeIssue, TypeOther}

// Form is the feedback form. NewForm returns the initial state shown to
// visitors.
type Form struct {
	Type    Type   `form:"type" json:"type" validate:"oneof=Suggestion Issue Other"`
	Name    string `form:"name" json:"name" validate:"max=100"`
	Email   string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

// NewForm returns the initial, empty form.
func NewForm() Form {
	return Form{Type: TypeSuggestion}
}

// Normalize trims whitespace and defaults an empty type.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
	if f.Type == "" {
		f.Type = TypeSuggestion
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldMessages = map[string]string{
	"Type":    "Please choose a feedback type.",
	"Name":    "Name must be at most 100 characters.",
	"Email":   "Please enter a valid email address.",
	"Message": "Please enter a message.",
}

var fieldNames = map[string]string{
	"Type":    "type",
	"Name":    "name",
	"Email":   "email",
	"Message": "message",
}

// Validate normalizes f and checks it. It returns fotierrors.ValidationErrors
// keyed by form field name.
func (f *Form) Validate() error {
	f.Normalize()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(fotierrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg := fieldMessages[fe.Field()]
		if fe.Field() == "Message" && fe.Tag() == "max" {
			msg = "Message must be at most 5000 characters."
		}
		out = append(out, fotierrors.NewValidationError(fieldNames[fe.Field()], msg))
	}
	return out
}
