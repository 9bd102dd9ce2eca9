package request

// BusRequest covers admin create and wholesale update. On create,
// available_seats starts at total_seats; the field is not accepted from the
// caller.
type BusRequest struct {
	BusNumber     string   `json:"bus_number" validate:"required"`
	RouteFrom     string   `json:"route_from" validate:"required"`
	RouteTo       string   `json:"route_to" validate:"required"`
	DepartureTime string   `json:"departure_time" validate:"required"`
	ArrivalTime   string   `json:"arrival_time" validate:"required"`
	TotalSeats    int      `json:"total_seats" validate:"required,gt=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	Amenities     []string `json:"amenities"`
	BusType       string   `json:"bus_type" validate:"omitempty,oneof=Seater Sleeper AC Non-AC"`
}

type SearchBusesRequest struct {
	RouteFrom string `json:"route_from"`
	RouteTo   string `json:"route_to"`
}
