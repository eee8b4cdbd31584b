package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// REVIEWS
// ──────────────────────────────────────────────

func reviewFixture() *fixture {
	f := newFixture()
	f.addRide("ride-1", "driver-1", 4, 10, time.Now().Add(-2*time.Hour), false)
	return f
}

func TestReview_ConfirmedPassengerCanReview(t *testing.T) {
	t.Parallel()

	f := reviewFixture()
	f.addBooking("booking-1", "ride-1", "passenger-1", 1, domain.BookingStatusConfirmed)

	review, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
		RideID:     "ride-1",
		ReviewerID: "passenger-1",
		RevieweeID: "driver-1",
		Rating:     4.5,
		Comment:    "Smooth ride, friendly driver.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %.1f", review.Rating)
	}

	reviews, err := f.reviewService.ListRideReviews(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 {
		t.Errorf("expected 1 review, got %d", len(reviews))
	}
}

func TestReview_DriverCanReviewPassenger(t *testing.T) {
	t.Parallel()

	f := reviewFixture()

	_, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
		RideID:     "ride-1",
		ReviewerID: "driver-1",
		RevieweeID: "passenger-1",
		Rating:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReview_RatingOutsideBoundsRejected(t *testing.T) {
	t.Parallel()

	f := reviewFixture()

	for _, rating := range []float64{0.5, 5.5} {
		_, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
			RideID:     "ride-1",
			ReviewerID: "driver-1",
			Rating:     rating,
		})
		if !errors.Is(err, service.ErrInvalidRating) {
			t.Errorf("rating=%.1f: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReview_NonParticipantForbidden(t *testing.T) {
	t.Parallel()

	f := reviewFixture()

	_, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
		RideID:     "ride-1",
		ReviewerID: "stranger-1",
		Rating:     5,
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReview_PendingPassengerForbidden(t *testing.T) {
	t.Parallel()

	f := reviewFixture()
	f.addBooking("booking-1", "ride-1", "passenger-1", 1, domain.BookingStatusPending)

	_, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
		RideID:     "ride-1",
		ReviewerID: "passenger-1",
		Rating:     5,
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReview_ModerationRejectsBlocklistedComment(t *testing.T) {
	t.Parallel()

	f := reviewFixture()
	f.addBooking("booking-1", "ride-1", "passenger-1", 1, domain.BookingStatusConfirmed)

	_, err := f.reviewService.CreateReview(context.Background(), service.CreateReviewRequest{
		RideID:     "ride-1",
		ReviewerID: "passenger-1",
		Rating:     1,
		Comment:    "This whole ride was a SCAM.",
	})
	if !errors.Is(err, service.ErrCommentRejected) {
		t.Fatalf("expected ErrCommentRejected, got %v", err)
	}
}
