// Package auth issues and validates session tokens.
//
// Sessions are stateless HS256 JWTs carried in an HttpOnly cookie (browser
// flows) or a Bearer header (API callers). There is no server-side session
// table; expiry is absolute from issue time.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teddexter0/simple-file-uploader/pkg/models"
)

// SessionCookieName is the cookie the browser session token travels in.
const SessionCookieName = "uploader_session"

// Common errors for session token operations.
var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrTokenSigningFailed  = errors.New("failed to sign token")
	ErrInvalidSecretLength = errors.New("JWT secret must be at least 32 characters")
)

// Config holds configuration for session token generation.
type Config struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	Secret string `mapstructure:"secret" yaml:"secret"`

	// Issuer is the token issuer claim. Default: "uploader".
	Issuer string `mapstructure:"issuer" yaml:"issuer"`

	// SessionDuration is the absolute session lifetime. Default: 24 hours.
	SessionDuration time.Duration `mapstructure:"session_duration" yaml:"session_duration"`
}

// Claims are the session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// Service issues and validates session tokens.
type Service struct {
	config Config
}

// NewService creates a session token service with the given configuration.
func NewService(config Config) (*Service, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}

	if config.Issuer == "" {
		config.Issuer = "uploader"
	}
	if config.SessionDuration == 0 {
		config.SessionDuration = 24 * time.Hour
	}

	return &Service{config: config}, nil
}

// IssueSession creates a session token for the given user.
func (s *Service) IssueSession(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionDuration)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", ErrTokenSigningFailed
	}
	return signed, nil
}

// ValidateSession validates a session token and returns its claims.
func (s *Service) ValidateSession(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionDuration returns the configured session lifetime.
func (s *Service) SessionDuration() time.Duration {
	return s.config.SessionDuration
}
