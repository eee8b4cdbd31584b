package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// SEAT INVENTORY INVARIANTS
// ──────────────────────────────────────────────

func TestSeatLedger_ConcurrentReservesNeverOversell(t *testing.T) {
	t.Parallel()

	rides := NewMockRideRepository()
	rides.AddRide(&domain.Ride{
		ID:             "ride-1",
		DriverID:       "driver-1",
		TotalSeats:     4,
		AvailableSeats: 4,
		DepartureTime:  time.Now().Add(24 * time.Hour),
	})

	ledger := service.NewSeatLedger(rides)

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Reserve(context.Background(), "ride-1", 1); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	if successes != 4 {
		t.Errorf("expected exactly 4 successful reservations, got %d", successes)
	}
	if seats := rides.AvailableSeats("ride-1"); seats != 0 {
		t.Errorf("expected 0 available seats, got %d", seats)
	}
}

func TestSeatLedger_ReserveMoreThanAvailableFails(t *testing.T) {
	t.Parallel()

	rides := NewMockRideRepository()
	rides.AddRide(&domain.Ride{ID: "ride-1", TotalSeats: 4, AvailableSeats: 2})

	ledger := service.NewSeatLedger(rides)
	_, err := ledger.Reserve(context.Background(), "ride-1", 3)
	if !errors.Is(err, service.ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats, got %v", err)
	}
	if seats := rides.AvailableSeats("ride-1"); seats != 2 {
		t.Errorf("expected inventory untouched at 2, got %d", seats)
	}
}

func TestSeatLedger_ReleaseCappedAtTotal(t *testing.T) {
	t.Parallel()

	rides := NewMockRideRepository()
	rides.AddRide(&domain.Ride{ID: "ride-1", TotalSeats: 4, AvailableSeats: 3})

	ledger := service.NewSeatLedger(rides)
	if err := ledger.Release(context.Background(), "ride-1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A double release cannot push availability past the fleet size.
	if seats := rides.AvailableSeats("ride-1"); seats != 4 {
		t.Errorf("expected 4 available seats, got %d", seats)
	}
}

func TestSeatLedger_RejectsNonPositiveSeatCounts(t *testing.T) {
	t.Parallel()

	rides := NewMockRideRepository()
	rides.AddRide(&domain.Ride{ID: "ride-1", TotalSeats: 4, AvailableSeats: 4})

	ledger := service.NewSeatLedger(rides)

	if _, err := ledger.Reserve(context.Background(), "ride-1", 0); !errors.Is(err, service.ErrInvalidSeatCount) {
		t.Errorf("expected ErrInvalidSeatCount on reserve, got %v", err)
	}
	if err := ledger.Release(context.Background(), "ride-1", -1); !errors.Is(err, service.ErrInvalidSeatCount) {
		t.Errorf("expected ErrInvalidSeatCount on release, got %v", err)
	}
}
