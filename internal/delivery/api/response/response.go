package response

import (
	"net/http"

	deliverycontext "evently/internal/delivery/context"
	domainerrors "evently/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageResponse is the body of operations that only confirm success.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message   string `json:"message"`         // User-friendly error message
	Code      string `json:"code"`            // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Field     string `json:"field,omitempty"` // Offending request field, validation errors only
	RequestID string `json:"request_id"`      // Request tracking ID
}

// Success writes data as the JSON body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes {"message": message}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode, message, field string) error {
	// Field names are only meaningful for client errors
	if statusCode >= http.StatusInternalServerError {
		field = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Message:   message,
		Code:      errorCode,
		Field:     field,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// HandleAppError writes err when it is an AppError and returns it unchanged otherwise.
func HandleAppError(c echo.Context, err error) error {
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		return Error(c, validationErr.HTTPCode(), validationErr.ErrorCode(), validationErr.Message(), validationErr.Field())
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), "")
	}

	return errors.WithStack(err)
}
