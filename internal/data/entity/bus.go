package entity

type BusType string

const (
	BusTypeSeater  BusType = "Seater"
	BusTypeSleeper BusType = "Sleeper"
	BusTypeAC      BusType = "AC"
	BusTypeNonAC   BusType = "Non-AC"
)

// Bus is one schedulable trip. Departure and arrival times are free-text
// labels, never parsed. AvailableSeats is debited only by payment
// reconciliation, not at booking time.
type Bus struct {
	Base
	BusNumber      string   `db:"bus_number"`
	RouteFrom      string   `db:"route_from"`
	RouteTo        string   `db:"route_to"`
	DepartureTime  string   `db:"departure_time"`
	ArrivalTime    string   `db:"arrival_time"`
	TotalSeats     int      `db:"total_seats"`
	AvailableSeats int      `db:"available_seats"`
	Price          float64  `db:"price"`
	Amenities      []string `db:"amenities"`
	BusType        BusType  `db:"bus_type"`
}
