package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	RideCacheTTL = 10 * time.Second // Seat counts change under booking traffic
	UserCacheTTL = 60 * time.Second // Profiles change rarely
)

// Key prefixes
const (
	rideCachePrefix = "cache:ride:"
	userCachePrefix = "cache:user:"
)

// CachedRide represents a cached ride entity.
type CachedRide struct {
	ID             string    `json:"id"`
	DriverID       string    `json:"driver_id"`
	CarID          string    `json:"car_id"`
	StartLocation  string    `json:"start_location"`
	EndLocation    string    `json:"end_location"`
	DepartureTime  time.Time `json:"departure_time"`
	PricePerSeat   float64   `json:"price_per_seat"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	InstantBooking bool      `json:"instant_booking"`
}

// CachedUser represents a cached user profile. Wallet balance is never
// cached; it is read transactionally from the database.
type CachedUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	MemberSince time.Time `json:"member_since"`
}

// GetRide retrieves a ride from cache.
func (s *CacheStore) GetRide(ctx context.Context, rideID string) (*CachedRide, error) {
	key := rideCachePrefix + rideID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var ride CachedRide
	if err := json.Unmarshal(data, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// SetRide stores a ride in cache.
func (s *CacheStore) SetRide(ctx context.Context, ride *CachedRide) error {
	key := rideCachePrefix + ride.ID
	data, err := json.Marshal(ride)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RideCacheTTL).Err()
}

// InvalidateRide removes a ride from cache.
func (s *CacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	key := rideCachePrefix + rideID
	return s.client.Del(ctx, key).Err()
}

// GetUser retrieves a user profile from cache.
func (s *CacheStore) GetUser(ctx context.Context, userID string) (*CachedUser, error) {
	key := userCachePrefix + userID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var user CachedUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUser stores a user profile in cache.
func (s *CacheStore) SetUser(ctx context.Context, user *CachedUser) error {
	key := userCachePrefix + user.ID
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, UserCacheTTL).Err()
}

// GetRidesBatch retrieves multiple rides from cache using a pipeline.
// Returns a map of rideID -> CachedRide, and a slice of missing IDs.
func (s *CacheStore) GetRidesBatch(ctx context.Context, rideIDs []string) (map[string]*CachedRide, []string, error) {
	if len(rideIDs) == 0 {
		return make(map[string]*CachedRide), nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(rideIDs))

	for _, id := range rideIDs {
		key := rideCachePrefix + id
		cmds[id] = pipe.Get(ctx, key)
	}

	// Pipeline returns redis.Nil when any key is missing; per-command
	// results below distinguish misses from real errors.
	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, nil, err
	}

	result := make(map[string]*CachedRide)
	var missing []string

	for id, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			missing = append(missing, id)
			continue
		}

		var ride CachedRide
		if err := json.Unmarshal(data, &ride); err != nil {
			missing = append(missing, id)
			continue
		}
		result[id] = &ride
	}

	return result, missing, nil
}

// SetRidesBatch stores multiple rides in cache using a pipeline.
func (s *CacheStore) SetRidesBatch(ctx context.Context, rides []*CachedRide) error {
	if len(rides) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, ride := range rides {
		key := rideCachePrefix + ride.ID
		data, err := json.Marshal(ride)
		if err != nil {
			continue // Skip invalid entries
		}
		pipe.Set(ctx, key, data, RideCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}
