package response

// SessionResponse is returned from create-session; the caller redirects to URL.
type SessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentStatusResponse echoes the processor's reported state for a session.
// Reconcile returns it identically no matter how many times it is called.
type PaymentStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}
