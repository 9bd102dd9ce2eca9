package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBus(r chi.Router, busHandler *adaptor.BusHandler) {
	// ==================== PUBLIC ROUTES ====================
	// Search and detail are open so the storefront works without login
	r.Get("/api/buses/search", busHandler.Search)
	r.Get("/api/buses/{bus_id}", busHandler.GetByID)
}
