package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentTransaction ties one checkout session to exactly one booking.
// SessionID is unique; the pending -> completed transition happens at most
// once per session regardless of how many reconcile calls observe "paid".
type PaymentTransaction struct {
	Base
	BookingID     uuid.UUID         `db:"booking_id"`
	UserID        uuid.UUID         `db:"user_id"`
	Amount        float64           `db:"amount"`
	Currency      string            `db:"currency"`
	SessionID     string            `db:"session_id"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	Status        PaymentStatus     `db:"status"`
	Metadata      map[string]string `db:"metadata"`
}
