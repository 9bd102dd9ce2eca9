package usecase

import "errors"

// Domain errors surfaced to handlers. Services wrap these with context via
// fmt.Errorf("...: %w", Err...); handlers map them with errors.Is.
var (
	// ErrNotFound covers both absent entities and entities owned by someone
	// else; the two cases are deliberately indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a duplicate registration.
	ErrConflict = errors.New("already registered")

	// ErrInvalidCredentials covers unknown email and password mismatch alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrForbidden          = errors.New("access denied")
	ErrInsufficientSeats  = errors.New("not enough seats available")
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrPaymentIncomplete  = errors.New("payment not completed")
	ErrInvalidSignature   = errors.New("invalid webhook signature")

	// ErrUpstream marks a failed or timed-out payment processor call. No
	// automatic retry happens; the caller re-polls.
	ErrUpstream = errors.New("payment provider request failed")
)
