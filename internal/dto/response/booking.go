package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

// BookingResponse joins the booking with a live snapshot of its bus.
// BusDetails is nil when the referenced bus has been deleted.
type BookingResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	BusID          string               `json:"bus_id"`
	Seats          []int32              `json:"seats"`
	TotalAmount    float64              `json:"total_amount"`
	Status         entity.BookingStatus `json:"status"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	SessionID      *string              `json:"session_id,omitempty"`
	PassengerName  string               `json:"passenger_name"`
	PassengerEmail string               `json:"passenger_email"`
	PassengerPhone string               `json:"passenger_phone"`
	BookingDate    time.Time            `json:"booking_date"`
	BusDetails     *BusResponse         `json:"bus_details,omitempty"`
	UserDetails    *UserResponse        `json:"user_details,omitempty"`
}

func BookingToResponse(booking *entity.Booking, bus *entity.Bus) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		UserID:         booking.UserID.String(),
		BusID:          booking.BusID.String(),
		Seats:          booking.Seats,
		TotalAmount:    booking.TotalAmount,
		Status:         booking.Status,
		PaymentStatus:  booking.PaymentStatus,
		SessionID:      booking.SessionID,
		PassengerName:  booking.PassengerName,
		PassengerEmail: booking.PassengerEmail,
		PassengerPhone: booking.PassengerPhone,
		BookingDate:    booking.CreatedAt,
	}

	if bus != nil {
		busResp := BusToResponse(bus)
		resp.BusDetails = &busResp
	}

	return resp
}
