package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Payment rows are written inside BookingRepository.ConfirmWithPayment so
// the insert commits atomically with the booking confirmation; this
// repository only reads them back.
func (r *PaymentRepository) GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	query := `
	SELECT id, booking_id, gateway, gateway_txn_id, amount, currency, method, status, failure_reason, created_at, updated_at
	FROM payments
	WHERE id = $1
	`

	var payment domain.Payment
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Gateway,
		&payment.GatewayTxnID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&payment.FailureReason,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: payment %s", domain.ErrNotFound, paymentID)
		}
		return nil, err
	}

	return &payment, nil
}
