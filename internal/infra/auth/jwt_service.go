package auth

import (
	"time"

	"evently/config"
	"evently/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// An empty signing secret is a start-up error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, time.Now)
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

// Issue creates a token carrying sub, iat and exp.
func (s *jwtService) Issue(subjectID uuid.UUID) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks the signature before expiry; jwt.Parser runs claim validation only
// after the signature matched.
func (s *jwtService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, classifyTokenError(err)
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(service.ErrTokenMalformed, "subject is not a valid id")
	}

	return subjectID, nil
}

// TTL returns the lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Wrap(service.ErrTokenInvalidSignature, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	}
}
