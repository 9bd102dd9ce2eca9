package response

type AnalyticsResponse struct {
	TotalBuses        int64             `json:"total_buses"`
	TotalBookings     int64             `json:"total_bookings"`
	TotalUsers        int64             `json:"total_users"`
	ConfirmedBookings int64             `json:"confirmed_bookings"`
	PendingBookings   int64             `json:"pending_bookings"`
	TotalRevenue      float64           `json:"total_revenue"`
	RecentBookings    []BookingResponse `json:"recent_bookings"`
}
