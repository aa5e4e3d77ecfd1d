package validator

import (
	"testing"

	domainerrors "evently/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required"`
}

type bounded struct {
	Capacity int     `json:"capacity" validate:"min=0"`
	RadiusKm float64 `json:"radiusKm" validate:"gt=0"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		input     any
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: &credentials{Email: "a@b.com", Password: "secret1", Name: "A"},
		},
		{
			name:      "missing email",
			input:     &credentials{Password: "secret1", Name: "A"},
			wantField: "email",
			wantMsg:   "email is required",
		},
		{
			name:      "email without domain dot",
			input:     &credentials{Email: "a@b", Password: "secret1", Name: "A"},
			wantField: "email",
			wantMsg:   "email must be a valid email",
		},
		{
			name:      "short password",
			input:     &credentials{Email: "a@b.com", Password: "12345", Name: "A"},
			wantField: "password",
			wantMsg:   "password must be at least 6 characters long",
		},
		{
			name:      "missing name",
			input:     &credentials{Email: "a@b.com", Password: "secret1"},
			wantField: "name",
			wantMsg:   "name is required",
		},
		{
			name:      "negative number",
			input:     &bounded{Capacity: -1, RadiusKm: 1},
			wantField: "capacity",
			wantMsg:   "capacity must be at least 0",
		},
		{
			name:      "zero radius",
			input:     &bounded{RadiusKm: 0},
			wantField: "radiusKm",
			wantMsg:   "radiusKm must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			var validationErr *domainerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field())
			assert.Equal(t, tt.wantMsg, validationErr.Message())
		})
	}
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()

	require.NoError(t, registerRules(v, map[string]validator.Func{TagEmail: isLooseEmail}))
	assert.Error(t, registerRules(v, map[string]validator.Func{"": isLooseEmail}))
}
