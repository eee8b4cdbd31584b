package postgres

import (
	"context"
	"database/sql"

	"carpool/internal/domain"
)

// ReviewRepository is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewRepository struct {
	q Querier
}

// NewReviewRepository creates a new PostgreSQL review repository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{q: db}
}

// Create persists a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, ride_id, reviewer_id, reviewee_id, rating, comment, review_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		review.ID,
		review.RideID,
		review.ReviewerID,
		review.RevieweeID,
		review.Rating,
		review.Comment,
		review.ReviewTime,
	)
	return err
}

// ListByRide retrieves all reviews for a ride.
func (r *ReviewRepository) ListByRide(ctx context.Context, rideID string) ([]*domain.Review, error) {
	query := `
		SELECT id, ride_id, reviewer_id, reviewee_id, rating, comment, review_time
		FROM reviews WHERE ride_id = $1 ORDER BY review_time DESC
	`

	rows, err := r.q.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.RideID,
			&review.ReviewerID,
			&review.RevieweeID,
			&review.Rating,
			&review.Comment,
			&review.ReviewTime,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

// CountByRide returns the number of reviews referencing a ride.
func (r *ReviewRepository) CountByRide(ctx context.Context, rideID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE ride_id = $1`, rideID).Scan(&count)
	return count, err
}
