package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is one traveler's seat reservation on one bus. TotalAmount is
// frozen at creation. Seat indices are only checked against the aggregate
// available count, not against other bookings' seat picks.
type Booking struct {
	Base
	UserID         uuid.UUID     `db:"user_id"`
	BusID          uuid.UUID     `db:"bus_id"`
	Seats          []int32       `db:"seats"`
	TotalAmount    float64       `db:"total_amount"`
	Status         BookingStatus `db:"status"`
	PaymentStatus  PaymentStatus `db:"payment_status"`
	SessionID      *string       `db:"session_id"`
	PassengerName  string        `db:"passenger_name"`
	PassengerEmail string        `db:"passenger_email"`
	PassengerPhone string        `db:"passenger_phone"`
}
