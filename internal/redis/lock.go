package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireBookingLock attempts to acquire the cancellation lock for the
// given booking. Returns true if the lock was acquired, false if another
// cancellation already holds it.
func (s *LockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:booking:%s", bookingID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseBookingLock releases the cancellation lock for the given booking.
func (s *LockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	key := fmt.Sprintf("lock:booking:%s", bookingID)

	return s.client.Del(ctx, key).Err()
}
