package adaptor

import (
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log,
	}
}

// Search handles GET /api/buses/search?from=X&to=Y
func (h *BusHandler) Search(w http.ResponseWriter, r *http.Request) {
	routeFrom := r.URL.Query().Get("from")
	routeTo := r.URL.Query().Get("to")

	buses, err := h.service.Search(r.Context(), routeFrom, routeTo)
	if err != nil {
		handleServiceError(w, h.log, err, "search buses")
		return
	}

	utils.ResponseSuccess(w, "Buses retrieved", buses)
}

// GetByID handles GET /api/buses/{bus_id}
func (h *BusHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "bus_id")

	bus, err := h.service.GetByID(r.Context(), busID)
	if err != nil {
		handleServiceError(w, h.log, err, "get bus")
		return
	}

	utils.ResponseSuccess(w, "Bus retrieved", bus)
}
