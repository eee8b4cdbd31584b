package tests

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// fixture bundles the mocks and wired services most scenarios need.
type fixture struct {
	users    *MockUserRepository
	rides    *MockRideRepository
	bookings *MockBookingRepository
	payments *MockPaymentRepository
	cars     *MockCarRepository
	reviews  *MockReviewRepository
	txm      *MockTxManager
	locks    *MockLockStore
	cache    *MockCacheStore

	processor *service.MockCardProcessor

	paymentService *service.PaymentService
	bookingService *service.BookingService
	cancelService  *service.CancellationService
	rideService    *service.RideService
	reviewService  *service.ReviewService
	userService    *service.UserService
}

func newFixture() *fixture {
	users := NewMockUserRepository()
	rides := NewMockRideRepository()
	bookings := NewMockBookingRepository()
	payments := NewMockPaymentRepository()
	cars := NewMockCarRepository()
	reviews := NewMockReviewRepository()
	txm := NewMockTxManager(users, rides, bookings, payments)
	locks := NewMockLockStore()
	cache := NewMockCacheStore()
	processor := service.NewMockCardProcessor()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	notifier := service.NewNotificationService(logger)

	paymentService := service.NewPaymentService(txm, payments, processor, notifier, logger)
	bookingService := service.NewBookingService(txm, bookings, rides, paymentService, notifier, logger)
	cancelService := service.NewCancellationService(txm, locks, paymentService, notifier, logger)
	rideService := service.NewRideService(rides, bookings, reviews, cars, cache, logger)
	reviewService := service.NewReviewService(reviews, bookings, rides, service.NewMockModerator(), logger)
	userService := service.NewUserService(users, cache, logger)

	return &fixture{
		users:          users,
		rides:          rides,
		bookings:       bookings,
		payments:       payments,
		cars:           cars,
		reviews:        reviews,
		txm:            txm,
		locks:          locks,
		cache:          cache,
		processor:      processor,
		paymentService: paymentService,
		bookingService: bookingService,
		cancelService:  cancelService,
		rideService:    rideService,
		reviewService:  reviewService,
		userService:    userService,
	}
}

func (f *fixture) addUser(id string, balance float64) {
	f.users.AddUser(&domain.User{
		ID:            id,
		Username:      id,
		WalletBalance: balance,
		MemberSince:   time.Now().Add(-24 * time.Hour * 30),
	})
}

func (f *fixture) addRide(id, driverID string, seats int, price float64, departure time.Time, instant bool) {
	f.rides.AddRide(&domain.Ride{
		ID:             id,
		DriverID:       driverID,
		CarID:          "car-" + driverID,
		StartLocation:  "Amsterdam",
		EndLocation:    "Utrecht",
		DepartureTime:  departure,
		PricePerSeat:   price,
		TotalSeats:     seats,
		AvailableSeats: seats,
		InstantBooking: instant,
		CreatedAt:      time.Now(),
	})
}

func (f *fixture) addBooking(id, rideID, passengerID string, seats int, status domain.BookingStatus) {
	f.bookings.AddBooking(&domain.Booking{
		ID:          id,
		RideID:      rideID,
		PassengerID: passengerID,
		SeatsBooked: seats,
		Status:      status,
		BookingTime: time.Now(),
	})
}

func (f *fixture) addPayment(id, userID, rideID string, amount float64, method domain.PaymentMethod, status domain.PaymentStatus) {
	f.payments.AddPayment(&domain.Payment{
		ID:        id,
		UserID:    userID,
		RideID:    rideID,
		Amount:    amount,
		Method:    method,
		Status:    status,
		ChargeRef: "ch_" + id,
		CreatedAt: time.Now(),
	})
}
