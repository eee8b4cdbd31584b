package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// TopUpRequest is the HTTP request body for a wallet top-up.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// UserResponse is the HTTP response for user data. The wallet balance is
// only included for the user themselves or an admin.
type UserResponse struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FullName      string   `json:"full_name"`
	WalletBalance *float64 `json:"wallet_balance,omitempty"`
	MemberSince   string   `json:"member_since"`
}

// GetMe handles GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user, true))
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	userID := c.Param("id")
	includeWallet := actor.UserID == userID || actor.IsAdmin

	// Wallet reads always hit the database; plain profile reads can be
	// served from cache.
	var user *domain.User
	var err error
	if includeWallet {
		user, err = h.userService.GetUser(c.Request.Context(), userID)
	} else {
		user, err = h.userService.GetProfile(c.Request.Context(), userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user, includeWallet))
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u, true))
	}
	c.JSON(http.StatusOK, response)
}

// TopUpWallet handles POST /v1/users/me/wallet
func (h *UserHandler) TopUpWallet(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.TopUpWallet(c.Request.Context(), actor, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user, true))
}

func toUserResponse(u *domain.User, includeWallet bool) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		MemberSince: u.MemberSince.Format("2006-01-02"),
	}
	if includeWallet {
		balance := u.WalletBalance
		resp.WalletBalance = &balance
	}
	return resp
}
