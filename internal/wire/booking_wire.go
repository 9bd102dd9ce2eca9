package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthJWT(repo.User, config.JWT, log))

		r.Post("/", bookingHandler.Create)
		r.Get("/", bookingHandler.List)
		r.Get("/{booking_id}", bookingHandler.GetByID)
		r.Get("/{booking_id}/download", bookingHandler.DownloadTicket)
	})
}
