package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthJWT(repo.User, config.JWT, log)).
		Post("/api/payments/create-session", paymentHandler.CreateSession)

	// ==================== PUBLIC ROUTES ====================
	// Status polling is keyed by an unguessable session ID; the success page
	// hits it before the user has a token in hand.
	r.Get("/api/payments/status/{session_id}", paymentHandler.GetStatus)

	// Webhook authenticates by signature, not bearer token
	r.Post("/api/webhook/stripe", paymentHandler.Webhook)
}
