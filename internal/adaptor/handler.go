package adaptor

import (
	"bus-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Bus     *BusHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Bus:     NewBusHandler(service.Bus, log),
		Booking: NewBookingHandler(service.Booking, service.Ticket, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Admin:   NewAdminHandler(service.Bus, service.Booking, service.Auth, service.Analytics, log),
	}
}
