package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Authenticated user endpoints
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)

	// Admin endpoint
	ListAll(ctx context.Context) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus ID format %s: %w", req.BusID, err)
	}

	// 2. Bus must exist
	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		s.log.Error("Failed to find bus", zap.Error(err), zap.String("bus_id", req.BusID))
		return nil, fmt.Errorf("find bus: %w", err)
	}
	if bus == nil {
		return nil, fmt.Errorf("bus %s: %w", req.BusID, ErrNotFound)
	}

	// 3. Coarse capacity check against the live counter. Seat indices are
	// not checked against other bookings; two pending bookings may hold the
	// same seat until one of them pays. The counter itself is untouched here
	// and debited only at payment completion.
	if len(req.Seats) > bus.AvailableSeats {
		return nil, fmt.Errorf("requested %d seats, %d available: %w",
			len(req.Seats), bus.AvailableSeats, ErrInsufficientSeats)
	}

	// 4. Freeze the amount at today's price
	totalAmount := bus.Price * float64(len(req.Seats))

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         userID,
		BusID:          busID,
		Seats:          req.Seats,
		TotalAmount:    totalAmount,
		Status:         entity.BookingStatusPending,
		PaymentStatus:  entity.PaymentStatusPending,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("bus_id", req.BusID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("bus_id", req.BusID),
		zap.Int("seat_count", len(req.Seats)),
		zap.Float64("total_amount", totalAmount),
	)

	resp := response.BookingToResponse(booking, bus)
	return &resp, nil
}

func (s *bookingService) GetByID(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	// Owner scoping happens in the filter; someone else's booking reads the
	// same as a missing one.
	booking, err := s.repo.Booking.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		s.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.BookingToResponse(booking, lookupBus(ctx, s.repo, s.log, booking.BusID))
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, lookupBus(ctx, s.repo, s.log, booking.BusID))
	}

	return responses, nil
}

func (s *bookingService) ListAll(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list all bookings", zap.Error(err))
		return nil, fmt.Errorf("list all bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := response.BookingToResponse(booking, lookupBus(ctx, s.repo, s.log, booking.BusID))

		// Admin listing also joins the owning user, password redacted.
		if user, err := s.repo.User.FindByID(ctx, booking.UserID); err == nil && user != nil {
			userResp := response.UserToResponse(user)
			resp.UserDetails = &userResp
		}

		responses[i] = resp
	}

	return responses, nil
}

// lookupBus is the tolerant join: a deleted bus yields nil, never an error.
func lookupBus(ctx context.Context, repo *repository.Repository, log *zap.Logger, busID uuid.UUID) *entity.Bus {
	bus, err := repo.Bus.FindByID(ctx, busID)
	if err != nil {
		log.Warn("Bus join failed", zap.Error(err), zap.String("bus_id", busID.String()))
		return nil
	}
	return bus
}
