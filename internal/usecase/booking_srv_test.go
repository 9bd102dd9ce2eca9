package usecase

import (
	"context"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func expressBus(available int) *entity.Bus {
	return &entity.Bus{
		Base:           entity.Base{ID: uuid.New()},
		BusNumber:      "EX-101",
		RouteFrom:      "New York",
		RouteTo:        "Boston",
		DepartureTime:  "08:00 AM",
		ArrivalTime:    "12:30 PM",
		TotalSeats:     40,
		AvailableSeats: available,
		Price:          25.50,
		BusType:        entity.BusTypeSeater,
	}
}

func bookingRequest(busID uuid.UUID, seats []int32) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		BusID:          busID.String(),
		Seats:          seats,
		PassengerName:  "Rider One",
		PassengerEmail: "rider@example.com",
		PassengerPhone: "5550001111",
	}
}

func TestCreateBooking_FreezesAmountAtBookingTime(t *testing.T) {
	bus := expressBus(40)

	buses := new(mockBusRepo)
	buses.On("FindByID", mock.Anything, bus.ID).Return(bus, nil)

	var stored *entity.Booking
	bookings := new(mockBookingRepo)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		stored = b
		return true
	})).Return(nil)

	svc := NewBookingService(&repository.Repository{Bus: buses, Booking: bookings}, zap.NewNop())

	resp, err := svc.Create(context.Background(), uuid.New(), bookingRequest(bus.ID, []int32{5, 6}))

	require.NoError(t, err)
	assert.InDelta(t, 51.00, resp.TotalAmount, 0.001)
	assert.Equal(t, "pending", string(resp.Status))
	assert.Equal(t, "pending", string(resp.PaymentStatus))

	// Stored amount matches the response; a later price change must not move it
	require.NotNil(t, stored)
	assert.InDelta(t, 51.00, stored.TotalAmount, 0.001)

	// Booking never touches the seat counter
	buses.AssertNotCalled(t, "DebitSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_InsufficientSeats(t *testing.T) {
	bus := expressBus(1)

	buses := new(mockBusRepo)
	buses.On("FindByID", mock.Anything, bus.ID).Return(bus, nil)

	bookings := new(mockBookingRepo)

	svc := NewBookingService(&repository.Repository{Bus: buses, Booking: bookings}, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), bookingRequest(bus.ID, []int32{1, 2}))

	assert.ErrorIs(t, err, ErrInsufficientSeats)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_BusNotFound(t *testing.T) {
	buses := new(mockBusRepo)
	buses.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewBookingService(&repository.Repository{Bus: buses, Booking: new(mockBookingRepo)}, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), bookingRequest(uuid.New(), []int32{1}))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_SameSeatTwiceWhilePending(t *testing.T) {
	// Seat indices are not cross-checked between pending bookings, only the
	// aggregate counter is enforced. Two riders can hold seat 7 until one pays.
	bus := expressBus(40)

	buses := new(mockBusRepo)
	buses.On("FindByID", mock.Anything, bus.ID).Return(bus, nil)

	bookings := new(mockBookingRepo)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(&repository.Repository{Bus: buses, Booking: bookings}, zap.NewNop())

	_, err1 := svc.Create(context.Background(), uuid.New(), bookingRequest(bus.ID, []int32{7}))
	_, err2 := svc.Create(context.Background(), uuid.New(), bookingRequest(bus.ID, []int32{7}))

	require.NoError(t, err1)
	require.NoError(t, err2)
	bookings.AssertNumberOfCalls(t, "Create", 2)
}

func TestGetBooking_ForeignBookingReadsAsMissing(t *testing.T) {
	// The owner-scoped lookup returns nothing for another user's booking, so
	// the caller cannot distinguish foreign from nonexistent.
	bookings := new(mockBookingRepo)
	bookings.On("FindByIDAndUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewBookingService(&repository.Repository{Booking: bookings}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAll_TolerantOfDeletedBus(t *testing.T) {
	userID := uuid.New()
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		UserID:        userID,
		BusID:         uuid.New(),
		Seats:         []int32{1},
		TotalAmount:   25.50,
		Status:        entity.BookingStatusConfirmed,
		PaymentStatus: entity.PaymentStatusCompleted,
	}

	bookings := new(mockBookingRepo)
	bookings.On("FindAll", mock.Anything).Return([]*entity.Booking{booking}, nil)

	buses := new(mockBusRepo)
	buses.On("FindByID", mock.Anything, booking.BusID).Return(nil, nil)

	users := new(mockUserRepo)
	users.On("FindByID", mock.Anything, userID).Return(&entity.User{
		Base:  entity.Base{ID: userID},
		Email: "rider@example.com",
	}, nil)

	svc := NewBookingService(&repository.Repository{User: users, Bus: buses, Booking: bookings}, zap.NewNop())

	resp, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Nil(t, resp[0].BusDetails)
	require.NotNil(t, resp[0].UserDetails)
	assert.Equal(t, "rider@example.com", resp[0].UserDetails.Email)
}
