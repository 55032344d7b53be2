// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every validation failure. Callers cannot
// tell a bad signature from an expired token.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is used when the issuer is built with a zero lifetime.
const DefaultTokenTTL = 60 * time.Minute

// Claims is the payload carried by an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AccountID parses the numeric subject claim.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenID returns the unique token id (jti).
func (c *Claims) TokenID() string {
	return c.ID
}

// ExpiresAtTime returns the expiry, or the zero time if absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenOptions configures an Issuer.
type TokenOptions struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Issuer signs and validates HS256 access tokens with a fixed secret.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewIssuer returns an Issuer for the given options.
func NewIssuer(opts TokenOptions) *Issuer {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{
		secret:   opts.Secret,
		issuer:   opts.Issuer,
		audience: opts.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token for the account. It returns the encoded token and
// its expiry.
func (i *Issuer) Issue(accountID int64, email, role string) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(accountID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Validate checks signature, issuer, audience and expiry with no clock
// skew allowance. Any failure yields ErrInvalidToken.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
