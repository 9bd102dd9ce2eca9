package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*entity.PaymentTransaction, error)

	// MarkCompleted performs the conditional pending -> completed transition.
	// It reports true only for the single caller that wins the transition;
	// every later (or concurrent losing) call observes false.
	MarkCompleted(ctx context.Context, sessionID string) (bool, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, booking_id, user_id, amount, currency, session_id,
			payment_status, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.BookingID,
		tx.UserID,
		tx.Amount,
		tx.Currency,
		tx.SessionID,
		tx.PaymentStatus,
		tx.Status,
		tx.Metadata,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment transaction",
			zap.Error(err),
			zap.String("booking_id", tx.BookingID.String()),
			zap.String("session_id", tx.SessionID),
		)
		return fmt.Errorf("create payment transaction for session %s: %w", tx.SessionID, err)
	}

	return nil
}

func (r *transactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.PaymentTransaction, error) {
	query := `
		SELECT id, booking_id, user_id, amount, currency, session_id,
			payment_status, status, metadata, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
	`

	var tx entity.PaymentTransaction
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&tx.ID,
		&tx.BookingID,
		&tx.UserID,
		&tx.Amount,
		&tx.Currency,
		&tx.SessionID,
		&tx.PaymentStatus,
		&tx.Status,
		&tx.Metadata,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment transaction by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find payment transaction by session ID %s: %w", sessionID, err)
	}

	return &tx, nil
}

func (r *transactionRepository) MarkCompleted(ctx context.Context, sessionID string) (bool, error) {
	// The WHERE clause is the idempotence boundary: two concurrent reconcile
	// calls for one session serialize here, and only one row transition can
	// succeed.
	query := `
		UPDATE payment_transactions
		SET payment_status = 'completed', status = 'completed', updated_at = NOW()
		WHERE session_id = $1 AND payment_status <> 'completed'
	`

	result, err := r.db.Exec(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to mark payment transaction completed",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return false, fmt.Errorf("mark payment transaction %s completed: %w", sessionID, err)
	}

	return result.RowsAffected() == 1, nil
}
