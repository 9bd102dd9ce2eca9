package usecase

import (
	"context"
	"sync/atomic"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type mockBusRepo struct {
	mock.Mock
}

func (m *mockBusRepo) Create(ctx context.Context, bus *entity.Bus) error {
	return m.Called(ctx, bus).Error(0)
}

func (m *mockBusRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	args := m.Called(ctx, id)
	bus, _ := args.Get(0).(*entity.Bus)
	return bus, args.Error(1)
}

func (m *mockBusRepo) Search(ctx context.Context, routeFrom, routeTo string) ([]*entity.Bus, error) {
	args := m.Called(ctx, routeFrom, routeTo)
	buses, _ := args.Get(0).([]*entity.Bus)
	return buses, args.Error(1)
}

func (m *mockBusRepo) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	args := m.Called(ctx)
	buses, _ := args.Get(0).([]*entity.Bus)
	return buses, args.Error(1)
}

func (m *mockBusRepo) Update(ctx context.Context, bus *entity.Bus) error {
	return m.Called(ctx, bus).Error(0)
}

func (m *mockBusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBusRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBusRepo) DebitSeats(ctx context.Context, busID uuid.UUID, seats int) error {
	return m.Called(ctx, busID, seats).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id, userID)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) SetSessionID(ctx context.Context, bookingID uuid.UUID, sessionID string) error {
	return m.Called(ctx, bookingID, sessionID).Error(0)
}

func (m *mockBookingRepo) MarkConfirmed(ctx context.Context, bookingID uuid.UUID) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockBookingRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) SumCompletedAmount(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) FindBySessionID(ctx context.Context, sessionID string) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	tx, _ := args.Get(0).(*entity.PaymentTransaction)
	return tx, args.Error(1)
}

func (m *mockTransactionRepo) MarkCompleted(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*payment.Session)
	return session, args.Error(1)
}

func (m *mockProvider) GetStatus(ctx context.Context, sessionID string) (*payment.Status, error) {
	args := m.Called(ctx, sessionID)
	status, _ := args.Get(0).(*payment.Status)
	return status, args.Error(1)
}

func (m *mockProvider) ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*payment.WebhookEvent)
	return event, args.Error(1)
}

// stubCache satisfies cache.BusCache without a running Redis.
type stubCache struct {
	invalidations atomic.Int32
}

func (c *stubCache) GetBuses(ctx context.Context) ([]*entity.Bus, error) { return nil, nil }

func (c *stubCache) SetBuses(ctx context.Context, buses []*entity.Bus) error { return nil }

func (c *stubCache) Invalidate(ctx context.Context) error {
	c.invalidations.Add(1)
	return nil
}
