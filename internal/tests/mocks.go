package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	GetByIDCallCount int32
	DebitCallCount   int32
	CreditCallCount  int32

	// Error injection
	DebitError  error
	CreditError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) DebitWallet(ctx context.Context, id string, amount float64) error {
	atomic.AddInt32(&m.DebitCallCount, 1)
	if m.DebitError != nil {
		return m.DebitError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if user.WalletBalance < amount {
		return repository.ErrInsufficientFunds
	}
	user.WalletBalance -= amount
	return nil
}

func (m *MockUserRepository) CreditWallet(ctx context.Context, id string, amount float64) error {
	atomic.AddInt32(&m.CreditCallCount, 1)
	if m.CreditError != nil {
		return m.CreditError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.WalletBalance += amount
	return nil
}

// Balance returns the wallet balance for assertions.
func (m *MockUserRepository) Balance(id string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u.WalletBalance
	}
	return 0
}

func (m *MockUserRepository) snapshot() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.User, len(m.users))
	for k, v := range m.users {
		copy := *v
		snap[k] = &copy
	}
	return snap
}

func (m *MockUserRepository) restore(s any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = s.(map[string]*domain.User)
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	ReserveCallCount int32
	ReleaseCallCount int32

	// Error injection
	CreateError  error
	ReserveError error
	ReleaseError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if filter.DriverID != "" && r.DriverID != filter.DriverID {
			continue
		}
		if filter.Past && !r.DepartureTime.Before(filter.Now) {
			continue
		}
		if filter.Upcoming && r.DepartureTime.Before(filter.Now) {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideRepository) Search(ctx context.Context, search repository.RideSearch) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if search.StartLocation != "" && !strings.EqualFold(r.StartLocation, search.StartLocation) {
			continue
		}
		if search.EndLocation != "" && !strings.EqualFold(r.EndLocation, search.EndLocation) {
			continue
		}
		if !search.DepartureDate.IsZero() {
			y1, m1, d1 := r.DepartureTime.Date()
			y2, m2, d2 := search.DepartureDate.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		if search.MinSeats > 0 && r.AvailableSeats < search.MinSeats {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideRepository) ExistsByDriverAndDeparture(ctx context.Context, driverID string, departure time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rides {
		if r.DriverID == driverID && r.DepartureTime.Equal(departure) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRideRepository) ReserveSeats(ctx context.Context, id string, seats int) (*domain.Ride, error) {
	atomic.AddInt32(&m.ReserveCallCount, 1)
	if m.ReserveError != nil {
		return nil, m.ReserveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if ride.AvailableSeats < seats {
		return nil, repository.ErrNotEnoughSeats
	}
	ride.AvailableSeats -= seats
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) ReleaseSeats(ctx context.Context, id string, seats int) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	if m.ReleaseError != nil {
		return m.ReleaseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	ride.AvailableSeats += seats
	if ride.AvailableSeats > ride.TotalSeats {
		ride.AvailableSeats = ride.TotalSeats
	}
	return nil
}

func (m *MockRideRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rides, id)
	return nil
}

// AvailableSeats returns a ride's available seats for assertions.
func (m *MockRideRepository) AvailableSeats(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rides[id]; ok {
		return r.AvailableSeats
	}
	return -1
}

// HasRide reports whether a ride exists.
func (m *MockRideRepository) HasRide(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rides[id]
	return ok
}

func (m *MockRideRepository) snapshot() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Ride, len(m.rides))
	for k, v := range m.rides {
		copy := *v
		snap[k] = &copy
	}
	return snap
}

func (m *MockRideRepository) restore(s any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides = s.(map[string]*domain.Ride)
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository. Like
// the real schema's partial unique index, Create refuses a second active
// booking for the same (ride, passenger) pair.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.RideID == booking.RideID && b.PassengerID == booking.PassengerID && b.Status.Active() {
			return repository.ErrDuplicate
		}
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetActiveByRideAndPassenger(ctx context.Context, rideID, passengerID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.RideID == rideID && b.PassengerID == passengerID && b.Status.Active() {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockBookingRepository) ListByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.RideID == rideID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.PassengerID == passengerID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) CountByRide(ctx context.Context, rideID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, b := range m.bookings {
		if b.RideID == rideID {
			count++
		}
	}
	return count, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

// GetBooking returns the booking by ID for assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

func (m *MockBookingRepository) snapshot() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Booking, len(m.bookings))
	for k, v := range m.bookings {
		copy := *v
		snap[k] = &copy
	}
	return snap
}

func (m *MockBookingRepository) restore(s any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = s.(map[string]*domain.Booking)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters for verification
	CreateCallCount       int32
	MarkRefundedCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetCompletedByRideAndPayer(ctx context.Context, rideID, userID string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Payment
	for _, p := range m.payments {
		if p.RideID == rideID && p.UserID == userID && p.Status == domain.PaymentStatusCompleted {
			if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	copy := *latest
	return &copy, nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Payment
	for _, p := range m.payments {
		if p.UserID == userID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

func (m *MockPaymentRepository) MarkRefunded(ctx context.Context, id string, status domain.PaymentStatus, refundAmount float64) error {
	atomic.AddInt32(&m.MarkRefundedCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok || payment.Status == domain.PaymentStatusRefunded {
		return repository.ErrNotFound
	}
	payment.Status = status
	payment.RefundAmount = refundAmount
	return nil
}

// GetPayment returns the payment by ID for assertions.
func (m *MockPaymentRepository) GetPayment(id string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[id]
}

// GetPaymentByRide returns the payment for a ride and payer.
func (m *MockPaymentRepository) GetPaymentByRide(rideID, userID string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.RideID == rideID && p.UserID == userID {
			return p
		}
	}
	return nil
}

// CountPayments returns the number of payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

func (m *MockPaymentRepository) snapshot() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Payment, len(m.payments))
	for k, v := range m.payments {
		copy := *v
		snap[k] = &copy
	}
	return snap
}

func (m *MockPaymentRepository) restore(s any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = s.(map[string]*domain.Payment)
}

// ──────────────────────────────────────────────
// MOCK CAR REPOSITORY
// ──────────────────────────────────────────────

// MockCarRepository is a mock implementation of CarRepository.
type MockCarRepository struct {
	mu   sync.RWMutex
	cars map[string]*domain.Car
}

// NewMockCarRepository creates a new mock car repository.
func NewMockCarRepository() *MockCarRepository {
	return &MockCarRepository{cars: make(map[string]*domain.Car)}
}

// AddCar adds a car to the mock repository.
func (m *MockCarRepository) AddCar(car *domain.Car) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = car
}

func (m *MockCarRepository) Create(ctx context.Context, car *domain.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = car
	return nil
}

func (m *MockCarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	car, ok := m.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *car
	return &copy, nil
}

func (m *MockCarRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Car
	for _, c := range m.cars {
		if c.OwnerID == ownerID {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK REVIEW REPOSITORY
// ──────────────────────────────────────────────

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
}

// NewMockReviewRepository creates a new mock review repository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[string]*domain.Review)}
}

// AddReview adds a review to the mock repository.
func (m *MockReviewRepository) AddReview(review *domain.Review) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *MockReviewRepository) ListByRide(ctx context.Context, rideID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Review
	for _, r := range m.reviews {
		if r.RideID == rideID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockReviewRepository) CountByRide(ctx context.Context, rideID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, r := range m.reviews {
		if r.RideID == rideID {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────
// MOCK TX MANAGER
// ──────────────────────────────────────────────

// txParticipant is implemented by mocks that can roll back.
type txParticipant interface {
	snapshot() any
	restore(any)
}

// MockTxManager is a mock implementation of repository.TxManager over the
// in-memory repositories. When fn fails, every participating mock is
// restored to its pre-transaction state, mirroring a database rollback.
type MockTxManager struct {
	Repos repository.Repositories

	participants []txParticipant

	// Counters for verification
	CallCount int32

	// Error injection
	BeginError error
}

// NewMockTxManager creates a transaction manager over the given mocks.
func NewMockTxManager(users *MockUserRepository, rides *MockRideRepository, bookings *MockBookingRepository, payments *MockPaymentRepository) *MockTxManager {
	return &MockTxManager{
		Repos: repository.Repositories{
			Users:    users,
			Rides:    rides,
			Bookings: bookings,
			Payments: payments,
		},
		participants: []txParticipant{users, rides, bookings, payments},
	}
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	atomic.AddInt32(&m.CallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}

	snapshots := make([]any, len(m.participants))
	for i, p := range m.participants {
		snapshots[i] = p.snapshot()
	}

	if err := fn(m.Repos); err != nil {
		for i, p := range m.participants {
			p.restore(snapshots[i])
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:booking:" + bookingID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:booking:"+bookingID)
	return nil
}

// IsLocked checks if a booking is locked (for test assertions).
func (m *MockLockStore) IsLocked(bookingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:booking:"+bookingID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStore.
type MockCacheStore struct {
	mu    sync.RWMutex
	rides map[string]*redis.CachedRide
	users map[string]*redis.CachedUser

	// Counters
	GetRideCallCount int32
	SetRideCallCount int32
	RideHitCount     int32
	UserHitCount     int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		rides: make(map[string]*redis.CachedRide),
		users: make(map[string]*redis.CachedUser),
	}
}

func (m *MockCacheStore) GetRide(ctx context.Context, rideID string) (*redis.CachedRide, error) {
	atomic.AddInt32(&m.GetRideCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, nil // Cache miss
	}
	atomic.AddInt32(&m.RideHitCount, 1)
	copy := *ride
	return &copy, nil
}

func (m *MockCacheStore) SetRide(ctx context.Context, ride *redis.CachedRide) error {
	atomic.AddInt32(&m.SetRideCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, rideID)
	return nil
}

func (m *MockCacheStore) GetUser(ctx context.Context, userID string) (*redis.CachedUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, nil // Cache miss
	}
	atomic.AddInt32(&m.UserHitCount, 1)
	copy := *user
	return &copy, nil
}

func (m *MockCacheStore) SetUser(ctx context.Context, user *redis.CachedUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockCacheStore) GetRidesBatch(ctx context.Context, rideIDs []string) (map[string]*redis.CachedRide, []string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]*redis.CachedRide)
	var missing []string
	for _, id := range rideIDs {
		if r, ok := m.rides[id]; ok {
			copy := *r
			result[id] = &copy
		} else {
			missing = append(missing, id)
		}
	}
	return result, missing, nil
}

func (m *MockCacheStore) SetRidesBatch(ctx context.Context, rides []*redis.CachedRide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rides {
		copy := *r
		m.rides[r.ID] = &copy
	}
	return nil
}

// HasCachedRide reports whether a ride is in the cache.
func (m *MockCacheStore) HasCachedRide(rideID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rides[rideID]
	return ok
}

// HasCachedUser reports whether a user profile is in the cache.
func (m *MockCacheStore) HasCachedUser(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID]
	return ok
}
