package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// CarHandler handles HTTP requests for cars.
type CarHandler struct {
	carService *service.CarService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// RegisterCarRequest is the HTTP request body for registering a car.
type RegisterCarRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
}

// CarResponse is the HTTP response for car operations.
type CarResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Color   string `json:"color"`
}

// RegisterCar handles POST /v1/cars
func (h *CarHandler) RegisterCar(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req RegisterCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Brand == "" || req.Model == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "brand and model are required"})
		return
	}

	car, err := h.carService.RegisterCar(c.Request.Context(), service.RegisterCarRequest{
		OwnerID: actor.UserID,
		Brand:   req.Brand,
		Model:   req.Model,
		Color:   req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCarResponse(car))
}

// GetMyCars handles GET /v1/cars
func (h *CarHandler) GetMyCars(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	cars, err := h.carService.ListOwnerCars(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		response = append(response, toCarResponse(car))
	}
	c.JSON(http.StatusOK, response)
}

func toCarResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:      car.ID,
		OwnerID: car.OwnerID,
		Brand:   car.Brand,
		Model:   car.Model,
		Color:   car.Color,
	}
}
