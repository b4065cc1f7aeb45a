package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/validation"
)

type testRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Website string `json:"website" validate:"omitempty,url"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{
		Name:    "Acme Supply",
		Website: "https://acme.example",
		Rating:  4,
	})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       testRequest
		wantField string
	}{
		{
			name:      "missing required field",
			req:       testRequest{Name: ""},
			wantField: "name",
		},
		{
			name:      "invalid url",
			req:       testRequest{Name: "Acme", Website: "not a url"},
			wantField: "website",
		},
		{
			name:      "rating out of range",
			req:       testRequest{Name: "Acme", Rating: 9},
			wantField: "rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

			// Field errors are keyed by JSON tag name.
			var domainErr *domainerrors.Error
			require.True(t, domainerrors.As(err, &domainErr))
			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}
