package usecase

import (
	"bus-booking/internal/cache"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/payment"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Bus       BusService
	Booking   BookingService
	Payment   PaymentService
	Analytics AnalyticsService
	Ticket    TicketService
}

func NewService(
	repo *repository.Repository,
	provider payment.Provider,
	busCache cache.BusCache,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Bus:       NewBusService(repo, busCache, log),
		Booking:   NewBookingService(repo, log),
		Payment:   NewPaymentService(repo, provider, busCache, config, log),
		Analytics: NewAnalyticsService(repo, log),
		Ticket:    NewTicketService(repo, log),
	}
}
