package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	// Generate renders the PDF ticket for a confirmed, paid booking owned
	// by the caller. The returned filename is suitable for a download header.
	Generate(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, string, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Generate(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, string, error) {
	booking, err := s.repo.Booking.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		return nil, "", fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, "", fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
	}

	if booking.PaymentStatus != entity.PaymentStatusCompleted {
		return nil, "", fmt.Errorf("booking %s: %w", bookingID.String(), ErrPaymentIncomplete)
	}

	data := ticket.Data{
		BookingID:      booking.ID.String(),
		PassengerName:  booking.PassengerName,
		PassengerEmail: booking.PassengerEmail,
		PassengerPhone: booking.PassengerPhone,
		Seats:          booking.Seats,
		TotalAmount:    booking.TotalAmount,
		Status:         string(booking.Status),
		BookingDate:    booking.CreatedAt.Format("2006-01-02 15:04"),
	}

	// Ticket survives bus deletion, route fields just come up blank.
	if bus := lookupBus(ctx, s.repo, s.log, booking.BusID); bus != nil {
		data.BusNumber = bus.BusNumber
		data.RouteFrom = bus.RouteFrom
		data.RouteTo = bus.RouteTo
		data.DepartureTime = bus.DepartureTime
		data.ArrivalTime = bus.ArrivalTime
	}

	pdf, err := ticket.Render(data)
	if err != nil {
		s.log.Error("Failed to render ticket",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}

	filename := fmt.Sprintf("ticket_%s.pdf", booking.ID.String())
	return pdf, filename, nil
}
