package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

type HoldRepository struct {
	db *sql.DB
}

func NewHoldRepository(db *sql.DB) *HoldRepository {
	return &HoldRepository{db: db}
}

func (r *HoldRepository) Create(ctx context.Context, hold *domain.InventoryHold) error {
	query := `
	INSERT INTO inventory_holds (id, flight_id, fare_class, user_id, session_id, seat_count, seats, status, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var userID sql.NullString
	if hold.UserID != nil {
		userID = sql.NullString{String: hold.UserID.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		hold.ID, hold.FlightID, hold.FareClass, userID, hold.SessionID,
		hold.SeatCount, pq.Array(hold.Seats), hold.Status, hold.ExpiresAt, hold.CreatedAt)

	return err
}

func (r *HoldRepository) GetByID(ctx context.Context, holdID uuid.UUID) (*domain.InventoryHold, error) {
	query := `
	SELECT id, flight_id, fare_class, user_id, session_id, seat_count, seats, status, expires_at, created_at
	FROM inventory_holds
	WHERE id = $1
	`

	var hold domain.InventoryHold
	var userID sql.NullString

	err := r.db.QueryRowContext(ctx, query, holdID).Scan(
		&hold.ID,
		&hold.FlightID,
		&hold.FareClass,
		&userID,
		&hold.SessionID,
		&hold.SeatCount,
		pq.Array(&hold.Seats),
		&hold.Status,
		&hold.ExpiresAt,
		&hold.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: hold %s", domain.ErrNotFound, holdID)
		}
		return nil, err
	}

	if userID.Valid && userID.String != "" {
		uid, err := uuid.Parse(userID.String)
		if err == nil {
			hold.UserID = &uid
		}
	}

	return &hold, nil
}

// TransitionFromActive enforces the state machine at the row level: only an
// ACTIVE hold moves, so terminal states stay absorbing even if two release
// paths race past the lease.
func (r *HoldRepository) TransitionFromActive(ctx context.Context, holdID uuid.UUID, status domain.HoldStatus) (bool, error) {
	query := `
	UPDATE inventory_holds
	SET status = $1
	WHERE id = $2 AND status = 'ACTIVE'
	`

	result, err := r.db.ExecContext(ctx, query, status, holdID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// ReleaseWithCredit performs the release as one transaction: the guarded
// status transition and the seat credit commit together or not at all. A
// failure after the credit can therefore never leave the hold ACTIVE with
// its seats already returned, which is what would let a retry credit them
// twice.
func (r *HoldRepository) ReleaseWithCredit(ctx context.Context, hold *domain.InventoryHold, status domain.HoldStatus) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE inventory_holds SET status = $1 WHERE id = $2 AND status = 'ACTIVE'`,
		status, hold.ID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	creditQuery := `
	UPDATE seat_inventory
	SET available_seats = available_seats + $1,
		version = version + 1
	WHERE flight_id = $2 AND fare_class = $3
		AND available_seats + $1 <= total_seats
	`

	result, err = tx.ExecContext(ctx, creditQuery, hold.SeatCount, hold.FlightID, hold.FareClass)
	if err != nil {
		return false, err
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, fmt.Errorf("%w: crediting %d seats for flight %s class %s",
			domain.ErrCapacityExceeded, hold.SeatCount, hold.FlightID, hold.FareClass)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

func (r *HoldRepository) GetExpired(ctx context.Context, now time.Time, limit int) ([]domain.InventoryHold, error) {
	query := `
	SELECT id, flight_id, fare_class, user_id, session_id, seat_count, seats, status, expires_at, created_at
	FROM inventory_holds
	WHERE status = 'ACTIVE' AND expires_at < $1
	ORDER BY expires_at
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []domain.InventoryHold
	for rows.Next() {
		var hold domain.InventoryHold
		var userID sql.NullString

		if err := rows.Scan(
			&hold.ID,
			&hold.FlightID,
			&hold.FareClass,
			&userID,
			&hold.SessionID,
			&hold.SeatCount,
			pq.Array(&hold.Seats),
			&hold.Status,
			&hold.ExpiresAt,
			&hold.CreatedAt,
		); err != nil {
			return nil, err
		}

		if userID.Valid && userID.String != "" {
			if uid, err := uuid.Parse(userID.String); err == nil {
				hold.UserID = &uid
			}
		}

		holds = append(holds, hold)
	}

	return holds, rows.Err()
}
