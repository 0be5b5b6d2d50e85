package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records which token ids are currently honored.  Key is the
// token id, value is the role entity id the token was issued for, TTL is the
// token's own lifetime.  The record, not the JWT exp claim, is the source of
// truth for validity: Delete is the only revocation mechanism available
// before natural expiry.
//
// All access is single-key (SET EX / GET / DEL), so no transactions are
// needed; a logout racing a concurrent read resolves at the store and can
// allow at most one more use of a token mid-flight.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

// Put upserts the session record for a token id with the token's lifetime as
// TTL.  Idempotent; re-putting the same id simply refreshes the record.
func (s *SessionStore) Put(ctx context.Context, tokenID, roleEntityID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, tokenID, roleEntityID, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStoreUnavailable, tokenID, err)
	}
	return nil
}

// Get returns the role entity id recorded for a token id.  A missing or
// expired key is the explicit revocation signal and maps to
// ErrSessionRevoked; anything else means the store itself failed.
func (s *SessionStore) Get(ctx context.Context, tokenID string) (string, error) {
	v, err := s.rdb.Get(ctx, tokenID).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrSessionRevoked
	case err != nil:
		return "", fmt.Errorf("%w: get %s: %v", ErrStoreUnavailable, tokenID, err)
	}
	return v, nil
}

// Delete revokes a token id.  Deleting an id that was never stored, or was
// already deleted, is not an error; logout stays idempotent.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.rdb.Del(ctx, tokenID).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStoreUnavailable, tokenID, err)
	}
	return nil
}
