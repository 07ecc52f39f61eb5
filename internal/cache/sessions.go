package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps a denylist of revoked session ids. Entries expire with
// the token they belong to, so the set stays bounded.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) revokeKey(sessionID string) string {
	return "session:revoked:" + sessionID
}

// Revoke marks a session id as logged out until the token would have expired.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired, nothing to deny
	}
	if err := s.client.Set(ctx, s.revokeKey(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.client.Get(ctx, s.revokeKey(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session revocation: %w", err)
	}
	return true, nil
}
