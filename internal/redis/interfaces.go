package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetRide(ctx context.Context, rideID string) (*CachedRide, error)
	SetRide(ctx context.Context, ride *CachedRide) error
	InvalidateRide(ctx context.Context, rideID string) error
	GetUser(ctx context.Context, userID string) (*CachedUser, error)
	SetUser(ctx context.Context, user *CachedUser) error
	GetRidesBatch(ctx context.Context, rideIDs []string) (map[string]*CachedRide, []string, error)
	SetRidesBatch(ctx context.Context, rides []*CachedRide) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, bookingID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
