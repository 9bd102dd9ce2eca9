package payment

import (
	"context"
)

// SessionRequest describes one checkout to open with the processor.
type SessionRequest struct {
	Amount     float64
	Currency   string
	Reference  string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the processor's handle for a newly opened checkout.
type Session struct {
	SessionID string
	URL       string
}

// Status echoes the processor's view of a session. PaymentStatus is the
// field reconciliation acts on; "paid" means the charge went through.
type Status struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

// WebhookEvent is a verified push notification from the processor.
type WebhookEvent struct {
	SessionID     string
	PaymentStatus string
}

// Provider is the external payment processor boundary. Implementations own
// credentials and transport; callers never see processor SDK types.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetStatus(ctx context.Context, sessionID string) (*Status, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
