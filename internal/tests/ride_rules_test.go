package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// RIDE CREATION RULES
// ──────────────────────────────────────────────

func validRideRequest() service.CreateRideRequest {
	return service.CreateRideRequest{
		DriverID:      "driver-1",
		CarID:         "car-1",
		StartLocation: "Amsterdam",
		EndLocation:   "Utrecht",
		DepartureTime: time.Now().Add(48 * time.Hour),
		PricePerSeat:  12.5,
		TotalSeats:    3,
	}
}

func TestRide_CreateStartsWithFullInventory(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "driver-1", Brand: "Toyota", Model: "Yaris"})

	ride, err := f.rideService.CreateRide(context.Background(), validRideRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.AvailableSeats != ride.TotalSeats {
		t.Errorf("expected available seats %d to equal total, got %d", ride.TotalSeats, ride.AvailableSeats)
	}
	if !f.rides.HasRide(ride.ID) {
		t.Error("expected ride to be persisted")
	}
}

func TestRide_SeatCountOutsideRangeRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "driver-1"})

	for _, seats := range []int{0, 5} {
		req := validRideRequest()
		req.TotalSeats = seats
		if _, err := f.rideService.CreateRide(context.Background(), req); !errors.Is(err, service.ErrInvalidSeatRange) {
			t.Errorf("seats=%d: expected ErrInvalidSeatRange, got %v", seats, err)
		}
	}
}

func TestRide_NonPositivePriceRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	req := validRideRequest()
	req.PricePerSeat = 0

	if _, err := f.rideService.CreateRide(context.Background(), req); !errors.Is(err, service.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestRide_PastDepartureRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	req := validRideRequest()
	req.DepartureTime = time.Now().Add(-time.Hour)

	if _, err := f.rideService.CreateRide(context.Background(), req); !errors.Is(err, service.ErrDepartureInPast) {
		t.Fatalf("expected ErrDepartureInPast, got %v", err)
	}
}

func TestRide_CarMustBelongToDriver(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "someone-else"})

	if _, err := f.rideService.CreateRide(context.Background(), validRideRequest()); !errors.Is(err, service.ErrCarNotOwned) {
		t.Fatalf("expected ErrCarNotOwned, got %v", err)
	}
}

func TestRide_DuplicateDepartureRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.cars.AddCar(&domain.Car{ID: "car-1", OwnerID: "driver-1"})

	req := validRideRequest()
	if _, err := f.rideService.CreateRide(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.rideService.CreateRide(context.Background(), req); !errors.Is(err, service.ErrDuplicateRide) {
		t.Fatalf("expected ErrDuplicateRide, got %v", err)
	}
}

// ──────────────────────────────────────────────
// RIDE DELETION
// ──────────────────────────────────────────────

func TestRide_DeleteRefusedWhileBookingsExist(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(48*time.Hour), false)
	f.addBooking("booking-1", "ride-1", "passenger-1", 1, domain.BookingStatusCancelled)

	driver := domain.Actor{UserID: "driver-1"}
	err := f.rideService.DeleteRide(context.Background(), driver, "ride-1")
	if !errors.Is(err, service.ErrRideHasBookings) {
		t.Fatalf("expected ErrRideHasBookings, got %v", err)
	}
	if !f.rides.HasRide("ride-1") {
		t.Error("expected ride to survive the refused delete")
	}
}

func TestRide_DeleteRefusedWhileReviewsExist(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(48*time.Hour), false)
	f.reviews.AddReview(&domain.Review{ID: "review-1", RideID: "ride-1", ReviewerID: "passenger-1"})

	driver := domain.Actor{UserID: "driver-1"}
	err := f.rideService.DeleteRide(context.Background(), driver, "ride-1")
	if !errors.Is(err, service.ErrRideHasReviews) {
		t.Fatalf("expected ErrRideHasReviews, got %v", err)
	}
}

func TestRide_DeleteByNonDriverForbidden(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(48*time.Hour), false)

	stranger := domain.Actor{UserID: "someone-else"}
	if err := f.rideService.DeleteRide(context.Background(), stranger, "ride-1"); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRide_DeleteRemovesRideAndCacheEntry(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(48*time.Hour), false)

	// Warm the cache first.
	if _, err := f.rideService.GetRide(context.Background(), "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.cache.HasCachedRide("ride-1") {
		t.Fatal("expected ride to be cached after a read")
	}

	driver := domain.Actor{UserID: "driver-1"}
	if err := f.rideService.DeleteRide(context.Background(), driver, "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.rides.HasRide("ride-1") {
		t.Error("expected ride to be deleted")
	}
	if f.cache.HasCachedRide("ride-1") {
		t.Error("expected cache entry to be invalidated")
	}
}

// ──────────────────────────────────────────────
// RIDE READS
// ──────────────────────────────────────────────

func TestRide_GetServedFromCacheOnSecondRead(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(48*time.Hour), false)

	ctx := context.Background()
	if _, err := f.rideService.GetRide(ctx, "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ride, err := f.rideService.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.cache.RideHitCount != 1 {
		t.Errorf("expected 1 cache hit, got %d", f.cache.RideHitCount)
	}
	if ride.ID != "ride-1" || ride.AvailableSeats != 4 {
		t.Errorf("unexpected ride from cache: %+v", ride)
	}
}

func TestRide_BulkReadMixesCacheAndDatabase(t *testing.T) {
	t.Parallel()

	f := newFixture()
	departure := time.Now().Add(48 * time.Hour)
	f.addRide("ride-1", "driver-1", 4, 10, departure, false)
	f.addRide("ride-2", "driver-2", 3, 10, departure, false)

	ctx := context.Background()

	// Warm only ride-1; ride-2 must come from the database.
	if _, err := f.rideService.GetRide(ctx, "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rides, err := f.rideService.GetRidesBulk(ctx, []string{"ride-1", "ride-2", "no-such-ride"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rides) != 2 {
		t.Fatalf("expected 2 rides, got %d", len(rides))
	}
	if rides["ride-2"].AvailableSeats != 3 {
		t.Errorf("unexpected ride-2: %+v", rides["ride-2"])
	}
	if _, ok := rides["no-such-ride"]; ok {
		t.Error("unknown ride must be absent, not an error")
	}
	if !f.cache.HasCachedRide("ride-2") {
		t.Error("expected the database miss to be written back to cache")
	}
}

func TestRide_SearchMatchesRouteAndSeats(t *testing.T) {
	t.Parallel()

	f := newFixture()
	departure := time.Now().Add(48 * time.Hour)
	f.addRide("ride-1", "driver-1", 4, 10, departure, false)
	f.addRide("ride-2", "driver-2", 2, 10, departure, false)
	f.rides.AddRide(&domain.Ride{
		ID:             "ride-3",
		DriverID:       "driver-3",
		StartLocation:  "Rotterdam",
		EndLocation:    "Utrecht",
		DepartureTime:  departure,
		TotalSeats:     4,
		AvailableSeats: 4,
	})

	rides, err := f.rideService.SearchRides(context.Background(), repository.RideSearch{
		StartLocation: "amsterdam",
		EndLocation:   "utrecht",
		MinSeats:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rides) != 1 || rides[0].ID != "ride-1" {
		t.Errorf("expected only ride-1 to match, got %d rides", len(rides))
	}
}
