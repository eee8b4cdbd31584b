package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/handler"
	"carpool/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler    *handler.RideHandler
	BookingHandler *handler.BookingHandler
	PaymentHandler *handler.PaymentHandler
	CarHandler     *handler.CarHandler
	ReviewHandler  *handler.ReviewHandler
	UserHandler    *handler.UserHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes. All of them require an authenticated caller; the
	// idempotency layer sits behind auth so keys are scoped per user.
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTSecret))
	v1.Use(middleware.TransactionEnricher())
	v1.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	{
		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("", deps.RideHandler.SearchRides)
			rides.GET("/mine", deps.RideHandler.GetMyRides)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.DELETE("/:id", deps.RideHandler.DeleteRide)
			rides.GET("/:id/bookings", deps.BookingHandler.GetRideBookings)
			rides.GET("/:id/reviews", deps.ReviewHandler.GetRideReviews)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.GetMyBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/decision", deps.BookingHandler.DecideBooking)
			bookings.PATCH("/:id/seats", deps.BookingHandler.UpdateSeats)
			bookings.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("", deps.PaymentHandler.Charge)
			payments.GET("", deps.PaymentHandler.GetMyPayments)
			payments.GET("/:id", deps.PaymentHandler.GetPayment)
			payments.POST("/:id/refund", deps.PaymentHandler.RefundPayment)
		}

		// Car routes.
		cars := v1.Group("/cars")
		{
			cars.POST("", deps.CarHandler.RegisterCar)
			cars.GET("", deps.CarHandler.GetMyCars)
		}

		// Review routes.
		reviews := v1.Group("/reviews")
		{
			reviews.POST("", deps.ReviewHandler.CreateReview)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/me", deps.UserHandler.GetMe)
			users.POST("/me/wallet", deps.UserHandler.TopUpWallet)
			users.GET("/:id", deps.UserHandler.GetUser)
		}
	}

	return router
}
