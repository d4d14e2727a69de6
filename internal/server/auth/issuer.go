package auth

import (
	"errors"
	"time"
)

var (
	ErrEmptySecret     = errors.New("auth: signing secret is empty")
	ErrInvalidValidity = errors.New("auth: token validity must be positive")
)

// Issuer signs and verifies session tokens with a fixed secret and lifetime.
// It is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidValidity
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

func (i *Issuer) Issue(claims Claims) (string, error) {
	return GenerateToken(claims, i.secret, i.ttl)
}

func (i *Issuer) Verify(token string) (*Claims, error) {
	return ParseToken(token, i.secret)
}

// TTL returns the lifetime applied to issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
