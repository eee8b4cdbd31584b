package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// ReviewHandler handles HTTP requests for ride reviews.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest is the HTTP request body for leaving a review.
type CreateReviewRequest struct {
	RideID     string  `json:"ride_id"`
	RevieweeID string  `json:"reviewee_id"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment,omitempty"`
}

// ReviewResponse is the HTTP response for review operations.
type ReviewResponse struct {
	ID         string  `json:"id"`
	RideID     string  `json:"ride_id"`
	ReviewerID string  `json:"reviewer_id"`
	RevieweeID string  `json:"reviewee_id"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment,omitempty"`
	ReviewTime string  `json:"review_time"`
}

// CreateReview handles POST /v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), service.CreateReviewRequest{
		RideID:     req.RideID,
		ReviewerID: actor.UserID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toReviewResponse(review))
}

// GetRideReviews handles GET /v1/rides/:id/reviews
func (h *ReviewHandler) GetRideReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListRideReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		response = append(response, toReviewResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		RideID:     r.RideID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewTime: r.ReviewTime.Format("2006-01-02T15:04:05Z07:00"),
	}
}
