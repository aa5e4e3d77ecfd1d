package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Request-scoped values shared between middleware, handlers and services.

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeySubjectID is the key for the authenticated user's id.
	KeySubjectID ContextKey = "subject_id"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetSubjectID records the authenticated user on both echo.Context and the request context.
func SetSubjectID(c echo.Context, subjectID uuid.UUID) {
	c.Set(string(KeySubjectID), subjectID)
	c.SetRequest(c.Request().WithContext(WithSubjectID(c.Request().Context(), subjectID)))
}

// GetSubjectID returns the authenticated user set by the authorization gate.
func GetSubjectID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeySubjectID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// WithSubjectID returns a new context carrying the authenticated user's id.
func WithSubjectID(ctx context.Context, subjectID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeySubjectID, subjectID)
}

// GetSubjectIDFromContext returns the authenticated user's id from a standard context.
func GetSubjectIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(KeySubjectID).(uuid.UUID)

	return id, ok && id != uuid.Nil
}
