package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BusResponse struct {
	ID             string         `json:"id"`
	BusNumber      string         `json:"bus_number"`
	RouteFrom      string         `json:"route_from"`
	RouteTo        string         `json:"route_to"`
	DepartureTime  string         `json:"departure_time"`
	ArrivalTime    string         `json:"arrival_time"`
	TotalSeats     int            `json:"total_seats"`
	AvailableSeats int            `json:"available_seats"`
	Price          float64        `json:"price"`
	Amenities      []string       `json:"amenities"`
	BusType        entity.BusType `json:"bus_type"`
	CreatedAt      time.Time      `json:"created_at"`
}

func BusToResponse(bus *entity.Bus) BusResponse {
	return BusResponse{
		ID:             bus.ID.String(),
		BusNumber:      bus.BusNumber,
		RouteFrom:      bus.RouteFrom,
		RouteTo:        bus.RouteTo,
		DepartureTime:  bus.DepartureTime,
		ArrivalTime:    bus.ArrivalTime,
		TotalSeats:     bus.TotalSeats,
		AvailableSeats: bus.AvailableSeats,
		Price:          bus.Price,
		Amenities:      bus.Amenities,
		BusType:        bus.BusType,
		CreatedAt:      bus.CreatedAt,
	}
}
