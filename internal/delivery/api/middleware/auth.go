package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "evently/internal/delivery/context"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "bearer"

// AuthMiddleware is the authorization gate in front of protected routes.
// It only verifies bearer tokens; it never looks users up.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects requests without a valid bearer token with 403.
// On success the subject id is attached to the request and next runs exactly once.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrAccessDenied
		}

		subjectID, err := m.tokenSvc.Verify(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Bearer token rejected", slog.String("reason", tokenErrorKind(err)))

			return domainerrors.ErrInvalidToken
		}

		deliverycontext.SetSubjectID(c, subjectID)

		return next(c)
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}

func tokenErrorKind(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, service.ErrTokenExpired):
		return "expired"
	case errors.Is(err, service.ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
