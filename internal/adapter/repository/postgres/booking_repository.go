package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	queryHeader := `
	INSERT INTO bookings (id, pnr, user_id, itinerary_id, status, amount, currency, hold_id, created_at, expires_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var holdID sql.NullString
	if booking.HoldID != nil {
		holdID = sql.NullString{String: booking.HoldID.String(), Valid: true}
	}

	_, err = tx.ExecContext(ctx, queryHeader,
		booking.ID, booking.PNR, booking.UserID, booking.ItineraryID, booking.Status,
		booking.Amount, booking.Currency, holdID, booking.CreatedAt, booking.ExpiresAt, booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	queryPassenger := `
	INSERT INTO booking_passengers (booking_id, first_name, last_name, age, gender, document_type, document_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, queryPassenger)
	if err != nil {
		return fmt.Errorf("failed to prepare passenger statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range booking.Passengers {
		_, err := stmt.ExecContext(ctx, booking.ID, p.FirstName, p.LastName, p.Age, p.Gender, p.DocumentType, p.DocumentNumber)
		if err != nil {
			return fmt.Errorf("failed to insert passenger %s %s: %w", p.FirstName, p.LastName, err)
		}
	}

	querySeat := `
	INSERT INTO booking_seats (booking_id, flight_id, seat_no, fare_class)
	VALUES ($1, $2, $3, $4)
	`

	seatStmt, err := tx.PrepareContext(ctx, querySeat)
	if err != nil {
		return fmt.Errorf("failed to prepare seat statement: %w", err)
	}
	defer seatStmt.Close()

	for _, s := range booking.Seats {
		_, err := seatStmt.ExecContext(ctx, booking.ID, s.FlightID, s.SeatNo, s.FareClass)
		if err != nil {
			return fmt.Errorf("failed to insert booking seat %s: %w", s.SeatNo, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT id, pnr, user_id, itinerary_id, status, amount, currency, hold_id, payment_transaction_id, created_at, expires_at, updated_at
	FROM bookings
	WHERE id = $1
	`

	booking, err := r.scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, bookingID)
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `
	SELECT id, pnr, user_id, itinerary_id, status, amount, currency, hold_id, payment_transaction_id, created_at, expires_at, updated_at
	FROM bookings
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// MarkCancelled carries the same row-level guard as the hold transition:
// CONFIRMED and CANCELLED absorb, so a cancel that read the booking before a
// racing payment confirmed it cannot land its write afterwards.
func (r *BookingRepository) MarkCancelled(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = $2
	WHERE id = $3 AND status NOT IN ('CANCELLED', 'CONFIRMED')
	`

	result, err := r.db.ExecContext(ctx, query, domain.BookingCancelled, time.Now(), bookingID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// ConfirmWithPayment writes the payment row and the booking confirmation in
// one transaction. When the guarded update matches no row the payment insert
// rolls back with it, so there is never a settled payment without a
// confirmed booking or a confirmation clobbering a terminal status.
func (r *BookingRepository) ConfirmWithPayment(ctx context.Context, bookingID uuid.UUID, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery := `
	INSERT INTO payments (id, booking_id, gateway, gateway_txn_id, amount, currency, method, status, failure_reason, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(ctx, insertQuery,
		payment.ID, payment.BookingID, payment.Gateway, payment.GatewayTxnID,
		payment.Amount, payment.Currency, payment.Method, payment.Status,
		payment.FailureReason, payment.CreatedAt, payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	updateQuery := `
	UPDATE bookings
	SET status = $1, payment_transaction_id = $2, updated_at = $3
	WHERE id = $4 AND status NOT IN ('CANCELLED', 'CONFIRMED')
	`

	result, err := tx.ExecContext(ctx, updateQuery, domain.BookingConfirmed, payment.ID, time.Now(), bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		var status domain.BookingStatus
		err := tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1`, bookingID).Scan(&status)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: booking %s", domain.ErrNotFound, bookingID)
		}
		if err != nil {
			return err
		}
		if status == domain.BookingCancelled {
			return fmt.Errorf("%w: booking %s", domain.ErrAlreadyCancelled, bookingID)
		}
		return fmt.Errorf("%w: booking %s", domain.ErrAlreadyConfirmed, bookingID)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingRepository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var holdID, paymentID sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.PNR,
		&booking.UserID,
		&booking.ItineraryID,
		&booking.Status,
		&booking.Amount,
		&booking.Currency,
		&holdID,
		&paymentID,
		&booking.CreatedAt,
		&booking.ExpiresAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if holdID.Valid && holdID.String != "" {
		if id, err := uuid.Parse(holdID.String); err == nil {
			booking.HoldID = &id
		}
	}
	if paymentID.Valid && paymentID.String != "" {
		if id, err := uuid.Parse(paymentID.String); err == nil {
			booking.PaymentTransactionID = &id
		}
	}

	return &booking, nil
}

func (r *BookingRepository) loadChildren(ctx context.Context, booking *domain.Booking) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT first_name, last_name, age, gender, document_type, document_number FROM booking_passengers WHERE booking_id = $1`,
		booking.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.FirstName, &p.LastName, &p.Age, &p.Gender, &p.DocumentType, &p.DocumentNumber); err != nil {
			return err
		}
		booking.Passengers = append(booking.Passengers, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	seatRows, err := r.db.QueryContext(ctx,
		`SELECT flight_id, seat_no, fare_class FROM booking_seats WHERE booking_id = $1`,
		booking.ID)
	if err != nil {
		return err
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var s domain.SeatSelection
		if err := seatRows.Scan(&s.FlightID, &s.SeatNo, &s.FareClass); err != nil {
			return err
		}
		booking.Seats = append(booking.Seats, s)
	}

	return seatRows.Err()
}
