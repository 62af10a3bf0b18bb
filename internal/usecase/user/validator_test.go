package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "users-api/pkg/errors"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		payload Payload
		want    UserInput
		field   string
		message string
	}{
		{
			name:    "valid",
			payload: Payload{"name": "Alice", "email": "a@b.com"},
			want:    UserInput{Name: "Alice", Email: "a@b.com"},
		},
		{
			name:    "unknown keys ignored",
			payload: Payload{"name": "Alice", "email": "a@b.com", "id": 99, "admin": true},
			want:    UserInput{Name: "Alice", Email: "a@b.com"},
		},
		{
			name:    "name exactly three characters",
			payload: Payload{"name": "Bob", "email": "bob@b.com"},
			want:    UserInput{Name: "Bob", Email: "bob@b.com"},
		},
		{
			name:    "name length counts characters not bytes",
			payload: Payload{"name": "Zoë", "email": "zoe@b.com"},
			want:    UserInput{Name: "Zoë", Email: "zoe@b.com"},
		},
		{
			name:    "nil payload",
			payload: nil,
			field:   "name",
			message: "name is required",
		},
		{
			name:    "missing name",
			payload: Payload{"email": "a@b.com"},
			field:   "name",
			message: "name is required",
		},
		{
			name:    "null name",
			payload: Payload{"name": nil, "email": "a@b.com"},
			field:   "name",
			message: "name is required",
		},
		{
			name:    "empty name",
			payload: Payload{"name": "", "email": "a@b.com"},
			field:   "name",
			message: "name is required",
		},
		{
			name:    "short name",
			payload: Payload{"name": "Al", "email": "a@b.com"},
			field:   "name",
			message: "name must be at least 3 characters",
		},
		{
			name:    "non-string name",
			payload: Payload{"name": 12345.0, "email": "a@b.com"},
			field:   "name",
			message: "name must be a string",
		},
		{
			name:    "name checked before email",
			payload: Payload{"name": "Al"},
			field:   "name",
			message: "name must be at least 3 characters",
		},
		{
			name:    "missing email",
			payload: Payload{"name": "Alice"},
			field:   "email",
			message: "email is required",
		},
		{
			name:    "invalid email",
			payload: Payload{"name": "Alice", "email": "alice.example.com"},
			field:   "email",
			message: "email must be a valid email",
		},
		{
			name:    "non-string email",
			payload: Payload{"name": "Alice", "email": []any{"a@b.com"}},
			field:   "email",
			message: "email must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.payload)
			if tt.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var verr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.Equal(t, UserInput{}, got)
		})
	}
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(UserInput{Name: "Alice", Email: "a@b.com"}))

	err := v.Struct(UserInput{Name: "Al", Email: "a@b.com"})
	var verr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "name must be at least 3 characters", verr.Message)

	err = v.Struct(UserInput{Name: "Alice", Email: "bad"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email must be a valid email", verr.Message)
}
