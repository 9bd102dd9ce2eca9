package usecase

import (
	"context"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pendingBooking(userID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		UserID:        userID,
		BusID:         uuid.New(),
		Seats:         []int32{5, 6},
		TotalAmount:   51.00,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

func TestCreateSession_Success(t *testing.T) {
	userID := uuid.New()
	booking := pendingBooking(userID)

	bookings := new(mockBookingRepo)
	bookings.On("FindByIDAndUser", mock.Anything, booking.ID, userID).Return(booking, nil)
	bookings.On("SetSessionID", mock.Anything, booking.ID, "cs_test_1").Return(nil)

	txs := new(mockTransactionRepo)
	txs.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.PaymentTransaction) bool {
		return tx.BookingID == booking.ID &&
			tx.SessionID == "cs_test_1" &&
			tx.Amount == 51.00 &&
			tx.PaymentStatus == entity.PaymentStatusPending
	})).Return(nil)

	provider := new(mockProvider)
	provider.On("CreateSession", mock.Anything, mock.MatchedBy(func(req payment.SessionRequest) bool {
		return req.Amount == 51.00 &&
			req.SuccessURL == "https://app.test/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
			req.CancelURL == "https://app.test/payment-cancel" &&
			req.Metadata["booking_id"] == booking.ID.String()
	})).Return(&payment.Session{SessionID: "cs_test_1", URL: "https://pay.test/cs_test_1"}, nil)

	svc := NewPaymentService(
		&repository.Repository{Booking: bookings, Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	resp, err := svc.CreateSession(context.Background(), userID, &request.CreateSessionRequest{
		BookingID: booking.ID.String(),
		HostURL:   "https://app.test",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.Equal(t, "https://pay.test/cs_test_1", resp.URL)
	bookings.AssertExpectations(t)
	txs.AssertExpectations(t)
}

func TestCreateSession_AlreadyPaid(t *testing.T) {
	userID := uuid.New()
	booking := pendingBooking(userID)
	booking.PaymentStatus = entity.PaymentStatusCompleted

	bookings := new(mockBookingRepo)
	bookings.On("FindByIDAndUser", mock.Anything, booking.ID, userID).Return(booking, nil)

	provider := new(mockProvider)

	svc := NewPaymentService(
		&repository.Repository{Booking: bookings, Transaction: new(mockTransactionRepo)},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	_, err := svc.CreateSession(context.Background(), userID, &request.CreateSessionRequest{
		BookingID: booking.ID.String(),
		HostURL:   "https://app.test",
	})

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	provider.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateSession_ForeignBooking(t *testing.T) {
	bookings := new(mockBookingRepo)
	bookings.On("FindByIDAndUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewPaymentService(
		&repository.Repository{Booking: bookings, Transaction: new(mockTransactionRepo)},
		new(mockProvider), &stubCache{}, testConfig(), zap.NewNop(),
	)

	_, err := svc.CreateSession(context.Background(), uuid.New(), &request.CreateSessionRequest{
		BookingID: uuid.New().String(),
		HostURL:   "https://app.test",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStatus_PaidAppliesTransitionOnce(t *testing.T) {
	userID := uuid.New()
	booking := pendingBooking(userID)
	sessionID := "cs_test_2"

	tx := &entity.PaymentTransaction{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     booking.ID,
		UserID:        userID,
		SessionID:     sessionID,
		PaymentStatus: entity.PaymentStatusPending,
	}

	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, sessionID).Return(tx, nil)
	txs.On("MarkCompleted", mock.Anything, sessionID).Return(true, nil)

	bookings := new(mockBookingRepo)
	bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookings.On("MarkConfirmed", mock.Anything, booking.ID).Return(nil)

	buses := new(mockBusRepo)
	buses.On("DebitSeats", mock.Anything, booking.BusID, 2).Return(nil)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, sessionID).Return(&payment.Status{
		Status:        "complete",
		PaymentStatus: "paid",
		AmountTotal:   5100,
		Currency:      "usd",
	}, nil)

	cache := &stubCache{}
	svc := NewPaymentService(
		&repository.Repository{Bus: buses, Booking: bookings, Transaction: txs},
		provider, cache, testConfig(), zap.NewNop(),
	)

	resp, err := svc.GetStatus(context.Background(), sessionID)

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, int64(5100), resp.AmountTotal)
	buses.AssertNumberOfCalls(t, "DebitSeats", 1)
	bookings.AssertNumberOfCalls(t, "MarkConfirmed", 1)
	assert.Equal(t, int32(1), cache.invalidations.Load())
}

func TestGetStatus_CompletedTransactionSkipsDebit(t *testing.T) {
	sessionID := "cs_test_3"
	tx := &entity.PaymentTransaction{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     uuid.New(),
		SessionID:     sessionID,
		PaymentStatus: entity.PaymentStatusCompleted,
	}

	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, sessionID).Return(tx, nil)

	buses := new(mockBusRepo)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, sessionID).Return(&payment.Status{
		Status:        "complete",
		PaymentStatus: "paid",
		AmountTotal:   5100,
		Currency:      "usd",
	}, nil)

	svc := NewPaymentService(
		&repository.Repository{Bus: buses, Booking: new(mockBookingRepo), Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	// Poll twice; neither call may debit again
	for i := 0; i < 2; i++ {
		resp, err := svc.GetStatus(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.PaymentStatus)
	}

	txs.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything)
	buses.AssertNotCalled(t, "DebitSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStatus_LostTransitionRaceSkipsDebit(t *testing.T) {
	// The transaction still reads pending but the guarded update reports the
	// transition already happened elsewhere. No second debit.
	sessionID := "cs_test_4"
	tx := &entity.PaymentTransaction{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     uuid.New(),
		SessionID:     sessionID,
		PaymentStatus: entity.PaymentStatusPending,
	}

	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, sessionID).Return(tx, nil)
	txs.On("MarkCompleted", mock.Anything, sessionID).Return(false, nil)

	buses := new(mockBusRepo)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, sessionID).Return(&payment.Status{
		Status:        "complete",
		PaymentStatus: "paid",
		AmountTotal:   5100,
		Currency:      "usd",
	}, nil)

	svc := NewPaymentService(
		&repository.Repository{Bus: buses, Booking: new(mockBookingRepo), Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	resp, err := svc.GetStatus(context.Background(), sessionID)

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	buses.AssertNotCalled(t, "DebitSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStatus_UnknownSession(t *testing.T) {
	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, "cs_missing").Return(nil, nil)

	svc := NewPaymentService(
		&repository.Repository{Transaction: txs},
		new(mockProvider), &stubCache{}, testConfig(), zap.NewNop(),
	)

	_, err := svc.GetStatus(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStatus_ProviderDown(t *testing.T) {
	sessionID := "cs_test_5"
	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, sessionID).Return(&entity.PaymentTransaction{
		SessionID:     sessionID,
		PaymentStatus: entity.PaymentStatusPending,
	}, nil)

	provider := new(mockProvider)
	provider.On("GetStatus", mock.Anything, sessionID).Return(nil, assert.AnError)

	svc := NewPaymentService(
		&repository.Repository{Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	_, err := svc.GetStatus(context.Background(), sessionID)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	provider := new(mockProvider)
	provider.On("ParseWebhook", mock.Anything, "bad-sig").Return(nil, assert.AnError)

	txs := new(mockTransactionRepo)

	svc := NewPaymentService(
		&repository.Repository{Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad-sig")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	txs.AssertNotCalled(t, "FindBySessionID", mock.Anything, mock.Anything)
}

func TestHandleWebhook_UnknownSessionTolerated(t *testing.T) {
	provider := new(mockProvider)
	provider.On("ParseWebhook", mock.Anything, "good-sig").Return(&payment.WebhookEvent{
		SessionID:     "cs_foreign",
		PaymentStatus: "paid",
	}, nil)

	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, "cs_foreign").Return(nil, nil)

	svc := NewPaymentService(
		&repository.Repository{Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "good-sig")
	assert.NoError(t, err)
}

func TestHandleWebhook_UnpaidEventIgnored(t *testing.T) {
	provider := new(mockProvider)
	provider.On("ParseWebhook", mock.Anything, "good-sig").Return(&payment.WebhookEvent{
		SessionID:     "cs_test_6",
		PaymentStatus: "unpaid",
	}, nil)

	txs := new(mockTransactionRepo)

	svc := NewPaymentService(
		&repository.Repository{Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "good-sig")

	assert.NoError(t, err)
	txs.AssertNotCalled(t, "FindBySessionID", mock.Anything, mock.Anything)
}

func TestHandleWebhook_PaidConfirmsAndDebits(t *testing.T) {
	userID := uuid.New()
	booking := pendingBooking(userID)
	sessionID := "cs_test_7"

	tx := &entity.PaymentTransaction{
		Base:          entity.Base{ID: uuid.New()},
		BookingID:     booking.ID,
		UserID:        userID,
		SessionID:     sessionID,
		PaymentStatus: entity.PaymentStatusPending,
	}

	provider := new(mockProvider)
	provider.On("ParseWebhook", mock.Anything, "good-sig").Return(&payment.WebhookEvent{
		SessionID:     sessionID,
		PaymentStatus: "paid",
	}, nil)

	txs := new(mockTransactionRepo)
	txs.On("FindBySessionID", mock.Anything, sessionID).Return(tx, nil)
	txs.On("MarkCompleted", mock.Anything, sessionID).Return(true, nil)

	bookings := new(mockBookingRepo)
	bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	bookings.On("MarkConfirmed", mock.Anything, booking.ID).Return(nil)

	buses := new(mockBusRepo)
	buses.On("DebitSeats", mock.Anything, booking.BusID, 2).Return(nil)

	svc := NewPaymentService(
		&repository.Repository{Bus: buses, Booking: bookings, Transaction: txs},
		provider, &stubCache{}, testConfig(), zap.NewNop(),
	)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "good-sig")

	require.NoError(t, err)
	buses.AssertNumberOfCalls(t, "DebitSeats", 1)
	bookings.AssertNumberOfCalls(t, "MarkConfirmed", 1)
}
