// Package token inspects bearer tokens on the client side. The client
// holds no signing key, so claims are decoded without signature
// verification; a session built this way is provisional until the server
// confirms it through the profile endpoint.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/laboissim/labctl/internal/domain"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrExpired   = errors.New("token expired")
)

// Claims is the decoded payload of a bearer token.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      domain.Role
	ExpiresAt time.Time // zero when the token carries no expiry claim
}

// Expired reports whether the token's expiry claim has passed. Tokens
// without an expiry claim never expire locally; the server remains the
// authority for those.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Decode parses the token payload without verifying its signature.
func Decode(raw string) (Claims, error) {
	parser := jwt.NewParser()
	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, mapClaims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := Claims{
		UserID: stringClaim(mapClaims, "user_id"),
		Email:  stringClaim(mapClaims, "email"),
		Name:   stringClaim(mapClaims, "name"),
		Role:   domain.Role(stringClaim(mapClaims, "role")),
	}

	if c.UserID == "" {
		if sub, err := mapClaims.GetSubject(); err == nil {
			c.UserID = sub
		}
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}

	return c, nil
}

// Valid reports whether raw decodes cleanly and is unexpired at now.
func Valid(raw string, now time.Time) bool {
	c, err := Decode(raw)
	if err != nil {
		return false
	}
	return !c.Expired(now)
}

// Profile builds a best-effort user profile from the token claims alone.
// Missing claims get deterministic fallbacks: the display name falls back
// to the local part of the email, and the role to member.
func (c Claims) Profile(now time.Time) domain.UserProfile {
	name := c.Name
	if name == "" {
		name = domain.DisplayNameFallback(c.Email)
	}
	return domain.UserProfile{
		ID:          c.UserID,
		Email:       c.Email,
		DisplayName: name,
		Role:        domain.ResolveRole(domain.RoleSignals{Explicit: c.Role}),
		Status:      domain.UserActive,
		Verified:    true,
		JoinedAt:    now,
	}
}

// stringClaim reads a claim as a string, tolerating numeric user IDs.
func stringClaim(m jwt.MapClaims, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	}
	return ""
}
