// Package token issues and verifies the signed bearer tokens used for authentication.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "devconnector-api"
	audience = "devconnector-client"

	// DefaultTTL matches the validity window issued to clients: 360000 seconds.
	DefaultTTL = 360000 * time.Second
)

// ErrInvalidToken is returned by Verify for any token that cannot be trusted:
// bad signature, malformed payload, wrong issuer/audience, or expired.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies bearer tokens with a process-wide secret.
// Rotating the secret invalidates all outstanding tokens; there is no
// revocation list.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService returns a Service signing with the given secret. A zero ttl
// falls back to DefaultTTL.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: secret not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given user ID.
func (s *Service) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiration and returns the embedded user ID.
// Any failure is reported as ErrInvalidToken with the cause wrapped.
func (s *Service) Verify(tokenString string) (uint, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))

	if err != nil || !t.Valid {
		if err == nil {
			err = errors.New("token not valid")
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user ID in subject", ErrInvalidToken)
	}

	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
