package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/config"
	"golang.org/x/oauth2"
)

// ErrSecretTooShort is returned when the signing secret is under 32 bytes.
var ErrSecretTooShort = errors.New("jwt secret must be at least 32 characters")

// Claims are the claims carried by backend tokens.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// jwtTokenSource signs a fresh HMAC-SHA256 token on every call.
type jwtTokenSource struct {
	signingKey []byte
	lifetime   time.Duration
	subject    string
	timeFunc   func() time.Time // Injectable for testing
}

var _ oauth2.TokenSource = (*jwtTokenSource)(nil)

// NewTokenSource creates a TokenSource from the backend settings. Tokens are
// reused until shortly before they expire.
func NewTokenSource(cfg config.BackendConfig) (oauth2.TokenSource, error) {
	return newTokenSource(cfg, time.Now)
}

func newTokenSource(cfg config.BackendConfig, now func() time.Time) (oauth2.TokenSource, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, ErrSecretTooShort
	}
	src := &jwtTokenSource{
		signingKey: []byte(cfg.JWTSecret),
		lifetime:   time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		subject:    cfg.TokenSubject,
		timeFunc:   now,
	}
	return oauth2.ReuseTokenSource(nil, src), nil
}

// Token implements oauth2.TokenSource.
func (s *jwtTokenSource) Token() (*oauth2.Token, error) {
	now := s.timeFunc()
	expiry := now.Add(s.lifetime)

	claims := Claims{
		Scope: "tasks",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign backend token with HMAC-SHA256: %w", err)
	}

	return &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}

// HTTPClient returns an http.Client for backend calls. When a JWT secret is
// configured every request carries a bearer token.
func HTTPClient(cfg config.BackendConfig) (*http.Client, error) {
	client := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if cfg.JWTSecret == "" {
		return client, nil
	}

	src, err := NewTokenSource(cfg)
	if err != nil {
		return nil, err
	}
	client.Transport = &oauth2.Transport{
		Source: src,
		Base:   http.DefaultTransport,
	}
	return client, nil
}
