package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/cache"
	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/payment"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// processorPaid is the processor-side payment_status value that triggers
// local confirmation and the seat debit.
const processorPaid = "paid"

type PaymentService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *request.CreateSessionRequest) (*response.SessionResponse, error)

	// GetStatus is the pull half of reconciliation: it echoes the
	// processor's status and, when paid, applies the local transition.
	GetStatus(ctx context.Context, sessionID string) (*response.PaymentStatusResponse, error)

	// HandleWebhook is the push half: same convergence, same guard.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type paymentService struct {
	repo     *repository.Repository
	provider payment.Provider
	cache    cache.BusCache
	config   *utils.Config
	log      *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	provider payment.Provider,
	busCache cache.BusCache,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		provider: provider,
		cache:    busCache,
		config:   config,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateSession(ctx context.Context, userID uuid.UUID, req *request.CreateSessionRequest) (*response.SessionResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	// 2. Booking must exist and belong to the caller
	booking, err := s.repo.Booking.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		s.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	// 3. Paid bookings take no further sessions
	if booking.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrAlreadyPaid)
	}

	currency := s.config.Stripe.Currency
	if currency == "" {
		currency = "usd"
	}

	metadata := map[string]string{
		"booking_id": booking.ID.String(),
		"user_id":    userID.String(),
	}

	// 4. Open the checkout with the processor for the frozen amount
	session, err := s.provider.CreateSession(ctx, payment.SessionRequest{
		Amount:     booking.TotalAmount,
		Currency:   currency,
		Reference:  fmt.Sprintf("Bus booking %s", booking.ID.String()),
		SuccessURL: req.HostURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  req.HostURL + "/payment-cancel",
		Metadata:   metadata,
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create checkout session: %w", ErrUpstream)
	}

	// 5. Persist the transaction keyed by the processor's session ID.
	// Repeated createSession calls are not deduplicated: each call adds a
	// fresh transaction and only the newest session ID stays on the booking.
	now := time.Now()
	tx := &entity.PaymentTransaction{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     booking.ID,
		UserID:        userID,
		Amount:        booking.TotalAmount,
		Currency:      currency,
		SessionID:     session.SessionID,
		PaymentStatus: entity.PaymentStatusPending,
		Status:        entity.PaymentStatusPending,
		Metadata:      metadata,
	}

	if err := s.repo.Transaction.Create(ctx, tx); err != nil {
		s.log.Error("Failed to persist payment transaction",
			zap.Error(err),
			zap.String("session_id", session.SessionID),
		)
		return nil, fmt.Errorf("persist payment transaction: %w", err)
	}

	if err := s.repo.Booking.SetSessionID(ctx, booking.ID, session.SessionID); err != nil {
		s.log.Error("Failed to stamp session onto booking",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("session_id", session.SessionID),
		)
		return nil, fmt.Errorf("stamp session onto booking: %w", err)
	}

	s.log.Info("Checkout session created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", session.SessionID),
		zap.Float64("amount", booking.TotalAmount),
	)

	return &response.SessionResponse{
		URL:       session.URL,
		SessionID: session.SessionID,
	}, nil
}

func (s *paymentService) GetStatus(ctx context.Context, sessionID string) (*response.PaymentStatusResponse, error) {
	// 1. The session must map to a known transaction
	tx, err := s.repo.Transaction.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("find payment transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("payment transaction %s: %w", sessionID, ErrNotFound)
	}

	// 2. Ask the processor
	status, err := s.provider.GetStatus(ctx, sessionID)
	if err != nil {
		s.log.Error("Failed to query checkout status",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("query checkout status: %w", ErrUpstream)
	}

	// 3+4. Converge: skip when this transaction already completed, apply
	// the guarded transition otherwise.
	if status.PaymentStatus == processorPaid && tx.PaymentStatus != entity.PaymentStatusCompleted {
		if err := s.applyPaid(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	// 5. Echo the processor's view regardless of which branch ran
	return &response.PaymentStatusResponse{
		Status:        status.Status,
		PaymentStatus: status.PaymentStatus,
		AmountTotal:   status.AmountTotal,
		Currency:      status.Currency,
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	event, err := s.provider.ParseWebhook(body, signature)
	if err != nil {
		s.log.Warn("Webhook verification failed", zap.Error(err))
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err.Error())
	}

	if event.PaymentStatus != processorPaid {
		return nil
	}

	tx, err := s.repo.Transaction.FindBySessionID(ctx, event.SessionID)
	if err != nil {
		return fmt.Errorf("find payment transaction: %w", err)
	}
	if tx == nil {
		// A verified webhook for a session this service never opened; there
		// is nothing to converge, and the processor should not redeliver.
		s.log.Warn("Webhook for unknown session", zap.String("session_id", event.SessionID))
		return nil
	}
	if tx.PaymentStatus == entity.PaymentStatusCompleted {
		return nil
	}

	return s.applyPaid(ctx, event.SessionID)
}

// applyPaid performs the at-most-once local transition for a paid session.
// The conditional transaction update is re-checked here, immediately before
// any mutation, so two racing reconcile calls cannot both debit.
func (s *paymentService) applyPaid(ctx context.Context, sessionID string) error {
	won, err := s.repo.Transaction.MarkCompleted(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("complete payment transaction: %w", err)
	}
	if !won {
		// The other notification path got here first; its debit stands.
		s.log.Info("Reconcile lost transition race, skipping debit",
			zap.String("session_id", sessionID))
		return nil
	}

	tx, err := s.repo.Transaction.FindBySessionID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("reload payment transaction: %w", err)
	}
	if tx == nil {
		return fmt.Errorf("payment transaction %s: %w", sessionID, ErrNotFound)
	}

	booking, err := s.repo.Booking.FindByID(ctx, tx.BookingID)
	if err != nil {
		return fmt.Errorf("find booking for session %s: %w", sessionID, err)
	}
	if booking == nil {
		s.log.Warn("Paid session references missing booking",
			zap.String("session_id", sessionID),
			zap.String("booking_id", tx.BookingID.String()),
		)
		return nil
	}

	if err := s.repo.Booking.MarkConfirmed(ctx, booking.ID); err != nil {
		return fmt.Errorf("confirm booking %s: %w", booking.ID.String(), err)
	}

	if err := s.repo.Bus.DebitSeats(ctx, booking.BusID, len(booking.Seats)); err != nil {
		return fmt.Errorf("debit seats for booking %s: %w", booking.ID.String(), err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Bus cache invalidation failed", zap.Error(err))
	}

	s.log.Info("Payment reconciled",
		zap.String("session_id", sessionID),
		zap.String("booking_id", booking.ID.String()),
		zap.Int("seats_debited", len(booking.Seats)),
	)

	return nil
}
