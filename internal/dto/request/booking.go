package request

type CreateBookingRequest struct {
	BusID          string  `json:"bus_id" validate:"required,uuid4"`
	Seats          []int32 `json:"seats" validate:"required,min=1,dive,gt=0"`
	PassengerName  string  `json:"passenger_name" validate:"required"`
	PassengerEmail string  `json:"passenger_email" validate:"required,email"`
	PassengerPhone string  `json:"passenger_phone" validate:"required"`
}
