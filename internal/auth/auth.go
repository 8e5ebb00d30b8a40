// Package auth resolves bearer tokens to user identities.
package auth

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_verifier.go -package=mocks casedesk/internal/auth Verifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for any token that does not verify.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier resolves a bearer token to the user id in its subject claim.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// HMACVerifier checks HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier for tokens signed with secret.
func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

// Verify returns the token subject.
func (v *HMACVerifier) Verify(ctx context.Context, token string) (string, error) {
	return verify(ctx, token, func(*jwt.Token) (any, error) { return v.secret, nil }, "HS256")
}

// JWKSVerifier checks RS256/ES256 tokens against a JWKS endpoint. Keys are
// cached and refreshed in the background.
type JWKSVerifier struct {
	jwks keyfunc.Keyfunc
}

// NewJWKSVerifier fetches the key set at jwksURL.
func NewJWKSVerifier(ctx context.Context, jwksURL string) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}
	slog.Info("JWT verifier initialized", "jwks_url", jwksURL)
	return &JWKSVerifier{jwks: jwks}, nil
}

// Verify returns the token subject.
func (v *JWKSVerifier) Verify(ctx context.Context, token string) (string, error) {
	return verify(ctx, token, v.jwks.Keyfunc, "RS256", "ES256")
}

func verify(ctx context.Context, tokenString string, keyFunc jwt.Keyfunc, methods ...string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, jwt.WithValidMethods(methods))
	if err != nil || !token.Valid {
		slog.DebugContext(ctx, "token rejected", "error", err)
		return "", ErrUnauthorized
	}
	if claims.Subject == "" {
		slog.DebugContext(ctx, "token missing subject claim")
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
