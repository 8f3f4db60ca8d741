package feedback

import (
	"strings"
	"testing"

	fotierrors "github.com/foti-africa/foti-web/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Form{Type: TypeSuggestion}, NewForm())
}

func TestForm_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		form       Form
		wantFields []string
	}{
		{"message only", Form{Message: "Great tours"}, nil},
		{"all fields", Form{Type: TypeIssue, Name: "Amara", Email: "amara@example.com", Message: "Broken link"}, nil},
		{"empty message", Form{Type: TypeOther}, []string{"message"}},
		{"whitespace message", Form{Message: "  \n\t "}, []string{"message"}},
		{"bad email", Form{Email: "not-an-email", Message: "hi"}, []string{"email"}},
		{"unknown type", Form{Type: "Complaint", Message: "hi"}, []string{"type"}},
		{"long name", Form{Name: strings.Repeat("a", 101), Message: "hi"}, []string{"name"}},
		{"several", Form{Email: "x@", Message: " "}, []string{"email", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			form := tt.form
			err := form.Validate()

			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, fotierrors.IsInvalidInput(err))

			var verrs fotierrors.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, verrs.Field(field), "field %s", field)
			}
			assert.Len(t, verrs, len(tt.wantFields))
		})
	}
}

func TestForm_ValidateNormalizes(t *testing.T) {
	t.Parallel()
	form := Form{Name: "  David ", Email: " d@example.com ", Message: "  hello  "}

	require.NoError(t, form.Validate())
	assert.Equal(t, Form{Type: TypeSuggestion, Name: "David", Email: "d@example.com", Message: "hello"}, form)
}

func TestForm_EmptyMessageText(t *testing.T) {
	t.Parallel()
	form := Form{}
	err := form.Validate()

	var verrs fotierrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Please enter a message.", verrs.Field("message"))
}
