package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetByFlightAndFareClass(ctx context.Context, flightID uuid.UUID, fareClass string) (*domain.SeatInventory, error) {
	query := `
	SELECT id, flight_id, fare_class, cabin_class, total_seats, available_seats, price, version
	FROM seat_inventory
	WHERE flight_id = $1 AND fare_class = $2
	`

	var inv domain.SeatInventory
	err := r.db.QueryRowContext(ctx, query, flightID, fareClass).Scan(
		&inv.ID,
		&inv.FlightID,
		&inv.FareClass,
		&inv.CabinClass,
		&inv.TotalSeats,
		&inv.AvailableSeats,
		&inv.Price,
		&inv.Version,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: inventory for flight %s class %s", domain.ErrNotFound, flightID, fareClass)
		}
		return nil, err
	}

	return &inv, nil
}

func (r *InventoryRepository) Create(ctx context.Context, inv *domain.SeatInventory) error {
	query := `
	INSERT INTO seat_inventory (id, flight_id, fare_class, cabin_class, total_seats, available_seats, price, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.FlightID, inv.FareClass, inv.CabinClass,
		inv.TotalSeats, inv.AvailableSeats, inv.Price, inv.Version)

	return err
}

// ApplyDelta is the CAS write on the seat counter. The version predicate is
// the correctness backstop; the bounds predicates keep a racing admin write
// from ever driving the counter out of range.
func (r *InventoryRepository) ApplyDelta(ctx context.Context, flightID uuid.UUID, fareClass string, delta int, expectedVersion int) error {
	query := `
	UPDATE seat_inventory
	SET available_seats = available_seats + $1,
		version = version + 1
	WHERE flight_id = $2 AND fare_class = $3 AND version = $4
		AND available_seats + $1 >= 0
		AND available_seats + $1 <= total_seats
	`

	result, err := r.db.ExecContext(ctx, query, delta, flightID, fareClass, expectedVersion)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: flight %s class %s at version %d", domain.ErrVersionConflict, flightID, fareClass, expectedVersion)
	}

	return nil
}
