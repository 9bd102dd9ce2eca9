package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	buses     usecase.BusService
	bookings  usecase.BookingService
	users     usecase.AuthService
	analytics usecase.AnalyticsService
	log       *zap.Logger
}

func NewAdminHandler(
	buses usecase.BusService,
	bookings usecase.BookingService,
	users usecase.AuthService,
	analytics usecase.AnalyticsService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		buses:     buses,
		bookings:  bookings,
		users:     users,
		analytics: analytics,
		log:       log,
	}
}

// CreateBus handles POST /api/admin/buses
func (h *AdminHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	var req request.BusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bus, err := h.buses.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create bus")
		return
	}

	utils.ResponseSuccess(w, "Bus created", bus)
}

// ListBuses handles GET /api/admin/buses
func (h *AdminHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.buses.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list buses")
		return
	}

	utils.ResponseSuccess(w, "Buses retrieved", buses)
}

// UpdateBus handles PUT /api/admin/buses/{bus_id}
func (h *AdminHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "bus_id")

	var req request.BusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.buses.Update(r.Context(), busID, &req); err != nil {
		handleServiceError(w, h.log, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "Bus updated successfully", nil)
}

// DeleteBus handles DELETE /api/admin/buses/{bus_id}
func (h *AdminHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "bus_id")

	if err := h.buses.Delete(r.Context(), busID); err != nil {
		handleServiceError(w, h.log, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "Bus deleted successfully", nil)
}

// ListBookings handles GET /api/admin/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list all bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", users)
}

// Analytics handles GET /api/admin/analytics
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load analytics")
		return
	}

	utils.ResponseSuccess(w, "Analytics retrieved", summary)
}
