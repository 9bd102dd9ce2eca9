package request

// CreateSessionRequest opens a checkout session for a pending booking.
// HostURL is the caller-facing origin used to build the redirect URLs.
type CreateSessionRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	HostURL   string `json:"host_url" validate:"required,url"`
}
