package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hdops/turnos-admin/internal/model"
)

// Claims is the payload of the session token issued by the backend.
type Claims struct {
	// Name is the display name of the authenticated user.
	Name string `json:"name"`

	// Profile is the authorization profile granted to the user.
	Profile model.Profile `json:"profile"`

	jwt.RegisteredClaims
}

// DecodeToken parses the token payload without verifying its signature.
// The client holds no key material; the backend is the sole verifier, and
// the token is only decoded here to derive display/authorization state.
func DecodeToken(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decoding session token: %w", err)
	}
	return claims, nil
}

// IsTokenExpired reports whether the token is absent, undecodable, or past
// its embedded expiry. It is a pure query with no side effects.
func IsTokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(now)
}

// UserFromToken derives the current-user projection from a token.
// Returns nil when the token cannot be decoded.
func UserFromToken(token string) *model.User {
	claims, err := DecodeToken(token)
	if err != nil {
		return nil
	}
	return &model.User{
		ID:      claims.Profile.ID,
		Name:    claims.Name,
		Email:   claims.Subject,
		Profile: claims.Profile,
	}
}
