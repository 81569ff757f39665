package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "civictrack"

	// DefaultSessionTTL is the fixed lifetime of a session token.
	DefaultSessionTTL = 24 * time.Hour
)

// sessionClaims is the signed claim set. Ward is present only for officers.
type sessionClaims struct {
	UserID string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   RoleName `json:"role"`
	Ward   *int     `json:"ward,omitempty"`
	jwt.RegisteredClaims
}

// Codec turns a Principal into a signed, expiring HS256 token and back.
type Codec struct {
	key []byte
	now func() time.Time
}

// CodecOption configures Codec behavior.
type CodecOption func(*Codec)

// WithClock overrides time source (useful for tests).
func WithClock(fn func() time.Time) CodecOption {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCodec builds a Codec around an explicitly configured key. An empty key is
// an error; there is no fallback secret.
func NewCodec(secret string, opts ...CodecOption) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	c := &Codec{
		key: []byte(secret),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the session lifetime.
func (c *Codec) TTL() time.Duration { return DefaultSessionTTL }

// Encode signs a session token for p, valid from now until now+TTL.
func (c *Codec) Encode(p Principal) (Session, error) {
	if strings.TrimSpace(p.ID) == "" {
		return Session{}, errors.New("principal id is required")
	}
	if p.Role == nil || !CanSignIn(p.Role) {
		return Session{}, fmt.Errorf("%w: role cannot hold a session", ErrForbidden)
	}

	now := c.now().UTC()
	expiresAt := now.Add(DefaultSessionTTL)
	claims := sessionClaims{
		UserID: p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Role:   p.Role.Name(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	if ward, ok := p.Ward(); ok {
		claims.Ward = &ward
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Decode verifies the signature, then expiry, and only then returns the
// principal. Every failure collapses to ok=false.
func (c *Codec) Decode(token string) (Principal, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, false
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return Principal{}, false
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok {
		return Principal{}, false
	}
	if strings.TrimSpace(claims.UserID) == "" || claims.Subject != claims.UserID {
		return Principal{}, false
	}
	role, err := ParseRole(string(claims.Role), claims.Ward)
	if err != nil || !CanSignIn(role) {
		return Principal{}, false
	}
	return Principal{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}, true
}
