package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/ports"
)

const (
	maxCASAttempts  = 3
	casBackoffStart = 100 * time.Millisecond
)

// InventoryLedger owns the seat counters. Every mutation runs a full
// read-validate-write cycle: capacity is checked against a fresh read, the
// write is a CAS on the row version, and a conflicting write restarts the
// cycle with exponential backoff. Callers are expected to hold the
// flight-scoped lease before mutating, which makes conflicts rare; the CAS
// check stays as the safety backstop against writers that bypass the lease.
type InventoryLedger struct {
	repo   ports.InventoryRepository
	logger *logrus.Logger
}

func NewInventoryLedger(repo ports.InventoryRepository, logger *logrus.Logger) *InventoryLedger {
	return &InventoryLedger{repo: repo, logger: logger}
}

func (l *InventoryLedger) Read(ctx context.Context, flightID uuid.UUID, fareClass string) (*domain.SeatInventory, error) {
	return l.repo.GetByFlightAndFareClass(ctx, flightID, fareClass)
}

// CreateInventory registers a new (flight, fare class) counter. Used by the
// administrative surface when a flight is opened for sale.
func (l *InventoryLedger) CreateInventory(ctx context.Context, inv *domain.SeatInventory) error {
	if inv.TotalSeats <= 0 {
		return fmt.Errorf("total seats must be positive, got %d", inv.TotalSeats)
	}
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.AvailableSeats = inv.TotalSeats
	inv.Version = 0

	if err := l.repo.Create(ctx, inv); err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"flight_id":  inv.FlightID,
		"fare_class": inv.FareClass,
		"seats":      inv.TotalSeats,
	}).Info("Inventory created")
	return nil
}

// ApplyDelta adds delta (negative to debit, positive to credit) to the
// available seat count. A result outside [0, totalSeats] is a capacity
// violation and is rejected without retry. Version conflicts restart the
// cycle up to maxCASAttempts before surfacing ErrConcurrencyExhausted.
func (l *InventoryLedger) ApplyDelta(ctx context.Context, flightID uuid.UUID, fareClass string, delta int) error {
	backoff := casBackoffStart

	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		inv, err := l.repo.GetByFlightAndFareClass(ctx, flightID, fareClass)
		if err != nil {
			return err
		}

		if !inv.CanApply(delta) {
			return fmt.Errorf("%w: flight %s class %s has %d/%d seats, delta %d",
				domain.ErrCapacityExceeded, flightID, fareClass, inv.AvailableSeats, inv.TotalSeats, delta)
		}

		err = l.repo.ApplyDelta(ctx, flightID, fareClass, delta, inv.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}

		l.logger.WithFields(logrus.Fields{
			"flight_id":  flightID,
			"fare_class": fareClass,
			"attempt":    attempt,
		}).Warn("Inventory version conflict, retrying")

		if attempt == maxCASAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("%w: flight %s class %s after %d attempts",
		domain.ErrConcurrencyExhausted, flightID, fareClass, maxCASAttempts)
}
