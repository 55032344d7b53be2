// Package session tracks revoked access tokens in Valkey. Tokens are
// stateless JWTs, so signing out records the token id (jti) until the token
// would have expired anyway.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces revocation keys in Valkey to avoid collisions.
	keyPrefix = "revoked:"

	// minTTL keeps a revocation around briefly even for tokens that are
	// about to expire, so clock drift between nodes cannot reopen them.
	minTTL = time.Second
)

// ErrEmptyTokenID is returned when revoking a token without a jti.
var ErrEmptyTokenID = errors.New("session: empty token id")

// Store manages revoked token ids in Valkey.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore creates a revocation store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Revoke marks the token id as revoked until expiresAt.
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	ttl := expiresAt.Sub(s.now())
	if ttl < minTTL {
		ttl = minTTL
	}

	if err := s.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := s.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("session lookup: %w", err)
	}
	return n > 0, nil
}
