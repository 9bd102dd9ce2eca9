package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthJWT(repo.User, config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/buses", adminHandler.CreateBus)
		r.Get("/buses", adminHandler.ListBuses)
		r.Put("/buses/{bus_id}", adminHandler.UpdateBus)
		r.Delete("/buses/{bus_id}", adminHandler.DeleteBus)
		r.Get("/bookings", adminHandler.ListBookings)
		r.Get("/users", adminHandler.ListUsers)
		r.Get("/analytics", adminHandler.Analytics)
	})
}
