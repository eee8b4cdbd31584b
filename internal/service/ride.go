package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// RideService manages ride offers: creation, lookup, search and removal.
// Reads go through the Redis cache; seat inventory always comes from the
// database because cached counts go stale under booking traffic.
type RideService struct {
	rides    repository.RideRepository
	bookings repository.BookingRepository
	reviews  repository.ReviewRepository
	cars     repository.CarRepository
	cache    redis.CacheStoreInterface
	logger   *logrus.Logger
}

// NewRideService creates a new RideService.
func NewRideService(
	rides repository.RideRepository,
	bookings repository.BookingRepository,
	reviews repository.ReviewRepository,
	cars repository.CarRepository,
	cache redis.CacheStoreInterface,
	logger *logrus.Logger,
) *RideService {
	return &RideService{
		rides:    rides,
		bookings: bookings,
		reviews:  reviews,
		cars:     cars,
		cache:    cache,
		logger:   logger,
	}
}

// CreateRideRequest contains the parameters for offering a ride.
type CreateRideRequest struct {
	DriverID       string
	CarID          string
	StartLocation  string
	EndLocation    string
	DepartureTime  time.Time
	PricePerSeat   float64
	TotalSeats     int
	InstantBooking bool
}

// CreateRide validates and persists a new ride offer. The car must belong
// to the driver, and a driver cannot offer two rides with the same
// departure time.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if req.TotalSeats < domain.MinSeats || req.TotalSeats > domain.MaxSeats {
		return nil, ErrInvalidSeatRange
	}
	if req.PricePerSeat <= 0 {
		return nil, ErrInvalidPrice
	}
	if !req.DepartureTime.After(timeNow()) {
		return nil, ErrDepartureInPast
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != req.DriverID {
		return nil, ErrCarNotOwned
	}

	exists, err := s.rides.ExistsByDriverAndDeparture(ctx, req.DriverID, req.DepartureTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRide
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		DriverID:       req.DriverID,
		CarID:          req.CarID,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		DepartureTime:  req.DepartureTime,
		PricePerSeat:   req.PricePerSeat,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		InstantBooking: req.InstantBooking,
		CreatedAt:      timeNow(),
	}
	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// GetRide retrieves a ride, serving from cache when possible.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRide(ctx, rideID)
		if err != nil {
			s.logger.WithError(err).Warn("ride cache read failed")
		} else if cached != nil {
			return cachedToRide(cached), nil
		}
	}

	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRide(ctx, rideToCached(ride)); err != nil {
			s.logger.WithError(err).Warn("ride cache write failed")
		}
	}
	return ride, nil
}

// GetRidesBulk retrieves several rides at once, keyed by ID. Cached rides
// come back through one pipelined read; only the misses hit the database,
// and those are written back in one pipelined write. Unknown IDs are
// silently absent from the result.
func (s *RideService) GetRidesBulk(ctx context.Context, rideIDs []string) (map[string]*domain.Ride, error) {
	result := make(map[string]*domain.Ride, len(rideIDs))
	missing := rideIDs

	if s.cache != nil {
		cached, misses, err := s.cache.GetRidesBatch(ctx, rideIDs)
		if err != nil {
			s.logger.WithError(err).Warn("ride batch cache read failed")
		} else {
			for id, c := range cached {
				result[id] = cachedToRide(c)
			}
			missing = misses
		}
	}

	var fetched []*redis.CachedRide
	for _, id := range missing {
		ride, err := s.rides.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		result[id] = ride
		fetched = append(fetched, rideToCached(ride))
	}

	if s.cache != nil && len(fetched) > 0 {
		if err := s.cache.SetRidesBatch(ctx, fetched); err != nil {
			s.logger.WithError(err).Warn("ride batch cache write failed")
		}
	}
	return result, nil
}

// ListRides retrieves rides matching the filter.
func (s *RideService) ListRides(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	if filter.Now.IsZero() {
		filter.Now = timeNow()
	}
	return s.rides.List(ctx, filter)
}

// SearchRides retrieves rides matching the search criteria.
func (s *RideService) SearchRides(ctx context.Context, search repository.RideSearch) ([]*domain.Ride, error) {
	return s.rides.Search(ctx, search)
}

// DeleteRide removes a ride offer. Only the driver (or an admin) may
// delete, and only while no bookings or reviews reference the ride.
func (s *RideService) DeleteRide(ctx context.Context, actor domain.Actor, rideID string) error {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != actor.UserID && !actor.IsAdmin {
		return ErrForbidden
	}

	bookings, err := s.bookings.CountByRide(ctx, rideID)
	if err != nil {
		return err
	}
	if bookings > 0 {
		return ErrRideHasBookings
	}

	reviews, err := s.reviews.CountByRide(ctx, rideID)
	if err != nil {
		return err
	}
	if reviews > 0 {
		return ErrRideHasReviews
	}

	if err := s.rides.Delete(ctx, rideID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateRide(ctx, rideID); err != nil {
			s.logger.WithError(err).Warn("ride cache invalidation failed")
		}
	}
	return nil
}

func rideToCached(r *domain.Ride) *redis.CachedRide {
	return &redis.CachedRide{
		ID:             r.ID,
		DriverID:       r.DriverID,
		CarID:          r.CarID,
		StartLocation:  r.StartLocation,
		EndLocation:    r.EndLocation,
		DepartureTime:  r.DepartureTime,
		PricePerSeat:   r.PricePerSeat,
		TotalSeats:     r.TotalSeats,
		AvailableSeats: r.AvailableSeats,
		InstantBooking: r.InstantBooking,
	}
}

func cachedToRide(c *redis.CachedRide) *domain.Ride {
	return &domain.Ride{
		ID:             c.ID,
		DriverID:       c.DriverID,
		CarID:          c.CarID,
		StartLocation:  c.StartLocation,
		EndLocation:    c.EndLocation,
		DepartureTime:  c.DepartureTime,
		PricePerSeat:   c.PricePerSeat,
		TotalSeats:     c.TotalSeats,
		AvailableSeats: c.AvailableSeats,
		InstantBooking: c.InstantBooking,
	}
}
