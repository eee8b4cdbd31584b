package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ChargeRequest is the HTTP request body for charging a payment.
type ChargeRequest struct {
	RideID    string  `json:"ride_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"` // WALLET, CREDIT_CARD, IDEAL, PAYPAL
	CardToken string  `json:"card_token,omitempty"`
}

// PaymentResponse is the HTTP response for payment operations.
type PaymentResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	RideID       string  `json:"ride_id"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	Status       string  `json:"status"`
	RefundAmount float64 `json:"refund_amount,omitempty"`
}

// Charge handles POST /v1/payments
func (h *PaymentHandler) Charge(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.RideID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ride_id is required"})
		return
	}

	method, ok := domain.ParsePaymentMethod(req.Method)
	if !ok {
		respondError(c, service.ErrInvalidPaymentMethod)
		return
	}

	payment, err := h.paymentService.Charge(c.Request.Context(), service.ChargeRequest{
		UserID:    actor.UserID,
		RideID:    req.RideID,
		Amount:    req.Amount,
		Method:    method,
		CardToken: req.CardToken,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// RefundPayment handles POST /v1/payments/:id/refund
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}
	if !actor.IsAdmin {
		respondError(c, service.ErrForbidden)
		return
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if payment.UserID != actor.UserID && !actor.IsAdmin {
		respondError(c, service.ErrForbidden)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// GetMyPayments handles GET /v1/payments
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	payments, err := h.paymentService.ListUserPayments(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		RideID:       p.RideID,
		Amount:       p.Amount,
		Method:       string(p.Method),
		Status:       string(p.Status),
		RefundAmount: p.RefundAmount,
	}
}
