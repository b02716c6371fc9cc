package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "pending"
)

// IdempotencyStore reserves Idempotency-Keys while a submission is in flight
// and remembers the resulting application ID afterwards.
// Key format: idem:<kind>:<idempotency_key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. Keys expire after ttl, or after 24h when
// ttl is not positive.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key. When another request holds it, reserved is false and
// existingID is the finished application ID, or empty if still pending.
func (s *IdempotencyStore) Reserve(ctx context.Context, kind domain.Kind, key string) (string, bool, error) {
	k := s.key(kind, key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Released between SETNX and GET; the caller may retry.
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if val == pendingMarker {
		return "", false, nil
	}
	return val, false, nil
}

// Complete stores the application ID created under key.
func (s *IdempotencyStore) Complete(ctx context.Context, kind domain.Kind, key, id string) error {
	return s.client.Set(ctx, s.key(kind, key), id, s.ttl).Err()
}

// Release drops a reservation so a failed submission can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, kind domain.Kind, key string) error {
	return s.client.Del(ctx, s.key(kind, key)).Err()
}

func (s *IdempotencyStore) key(kind domain.Kind, key string) string {
	return fmt.Sprintf("idem:%s:%s", kind, key)
}
