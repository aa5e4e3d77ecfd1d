// Package handler contains the HTTP handlers for the API.
package handler

import (
	"encoding/json"

	domainerrors "evently/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// normalizer is implemented by requests that clean up their fields before validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the request body into req, normalizes it and runs the validator.
// Every failure surfaces as a *domainerrors.ValidationError.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domainerrors.NewValidationError(typeErr.Field, typeErr.Field+" has an invalid type")
		}

		return domainerrors.NewValidationError("body", "request body must be a JSON object")
	}

	if n, ok := req.(normalizer); ok {
		n.normalize()
	}

	return c.Validate(req)
}
