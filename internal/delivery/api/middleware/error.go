package middleware

import (
	"log/slog"
	"net/http"

	"evently/internal/delivery/api/response"
	deliverycontext "evently/internal/delivery/context"
	domainerrors "evently/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	attrs := []any{
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			// The cause goes to the log; the client gets the generic message.
			logger.Error("Request failed", append(attrs, slog.String("code", appErr.ErrorCode()), slog.Any("error", err))...)
		} else {
			logger.Warn("Request rejected", append(attrs, slog.String("code", appErr.ErrorCode()), slog.String("reason", appErr.Message()))...)
		}

		_ = response.HandleAppError(c, err)

		return
	}

	// Check if it is an Echo HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed", append(attrs, slog.Any("error", err))...)
			message = domainerrors.ErrInternalError.Message()
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	logger.Error("Unhandled error", append(attrs, slog.Any("error", err))...)

	_ = response.HandleAppError(c, domainerrors.ErrInternalError)
}
