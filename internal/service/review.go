package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// Moderator screens review comments before publication.
type Moderator interface {
	// Check reports whether the text is acceptable.
	Check(ctx context.Context, text string) (bool, error)
}

// MockModerator is a mock Moderator backed by a word blocklist.
type MockModerator struct {
	Blocklist []string
}

// NewMockModerator creates a MockModerator with a default blocklist.
func NewMockModerator() *MockModerator {
	return &MockModerator{Blocklist: []string{"scam", "fraud"}}
}

// Check rejects text containing any blocklisted word.
func (m *MockModerator) Check(ctx context.Context, text string) (bool, error) {
	lower := strings.ToLower(text)
	for _, word := range m.Blocklist {
		if strings.Contains(lower, word) {
			return false, nil
		}
	}
	return true, nil
}

// ReviewService manages ride reviews.
type ReviewService struct {
	reviews   repository.ReviewRepository
	bookings  repository.BookingRepository
	rides     repository.RideRepository
	moderator Moderator
	logger    *logrus.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews repository.ReviewRepository,
	bookings repository.BookingRepository,
	rides repository.RideRepository,
	moderator Moderator,
	logger *logrus.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		bookings:  bookings,
		rides:     rides,
		moderator: moderator,
		logger:    logger,
	}
}

// CreateReviewRequest contains the parameters for leaving a review.
type CreateReviewRequest struct {
	RideID     string
	ReviewerID string
	RevieweeID string
	Rating     float64
	Comment    string
}

// CreateReview validates and persists a review. The reviewer must have
// taken part in the ride, either as its driver or as a passenger holding a
// confirmed booking.
func (s *ReviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	ride, err := s.rides.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != req.ReviewerID {
		booking, err := s.bookings.GetActiveByRideAndPassenger(ctx, req.RideID, req.ReviewerID)
		if err != nil {
			return nil, err
		}
		if booking == nil || booking.Status != domain.BookingStatusConfirmed {
			return nil, ErrForbidden
		}
	}

	if req.Comment != "" && s.moderator != nil {
		ok, err := s.moderator.Check(ctx, req.Comment)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCommentRejected
		}
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		RideID:     req.RideID,
		ReviewerID: req.ReviewerID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewTime: timeNow(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListRideReviews retrieves all reviews for a ride.
func (s *ReviewService) ListRideReviews(ctx context.Context, rideID string) ([]*domain.Review, error) {
	return s.reviews.ListByRide(ctx, rideID)
}
