package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// CreateSession handles POST /api/payments/create-session
func (h *PaymentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.CreateSession(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create checkout session")
		return
	}

	utils.ResponseSuccess(w, "Checkout session created", session)
}

// GetStatus handles GET /api/payments/status/{session_id}
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	status, err := h.service.GetStatus(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status retrieved", status)
}

// Webhook handles POST /api/webhook/stripe. The body is read raw because
// signature verification runs over the exact bytes the processor sent.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read webhook body", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := h.service.HandleWebhook(r.Context(), body, signature); err != nil {
		handleServiceError(w, h.log, err, "process webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook processed", nil)
}
