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
	holdLockWait = 5 * time.Second
	holdLockTTL  = 10 * time.Second

	reaperInterval  = 60 * time.Second
	reaperBatchSize = 100
)

func flightLockKey(flightID uuid.UUID) string {
	return "seat-hold:" + flightID.String()
}

type CreateHoldRequest struct {
	FlightID        uuid.UUID
	FareClass       string
	SessionID       string
	UserID          *uuid.UUID
	Seats           []string
	DurationMinutes int
}

// HoldService drives the hold state machine:
//
//	(none) -> ACTIVE -> {CONFIRMED | RELEASED | EXPIRED}
//
// All inventory movement happens under the flight-scoped lease, so check and
// debit are never interleaved with another writer on the same flight.
type HoldService struct {
	holdRepo ports.HoldRepository
	ledger   *InventoryLedger
	locker   ports.LeaseLocker
	logger   *logrus.Logger
}

func NewHoldService(holdRepo ports.HoldRepository, ledger *InventoryLedger, locker ports.LeaseLocker, logger *logrus.Logger) *HoldService {
	return &HoldService{
		holdRepo: holdRepo,
		ledger:   ledger,
		locker:   locker,
		logger:   logger,
	}
}

// CreateHold debits inventory for the requested seats and persists an ACTIVE
// hold. The lease is held across read-check-debit-persist so no concurrent
// caller can observe a stale seat count between check and debit.
func (s *HoldService) CreateHold(ctx context.Context, req CreateHoldRequest) (*domain.InventoryHold, error) {
	if len(req.Seats) == 0 {
		return nil, errors.New("no seats requested")
	}
	if req.DurationMinutes <= 0 {
		return nil, errors.New("hold duration must be positive")
	}

	lease, err := s.locker.Acquire(ctx, flightLockKey(req.FlightID), holdLockWait, holdLockTTL)
	if err != nil {
		return nil, err
	}
	defer s.releaseLease(lease)

	inv, err := s.ledger.Read(ctx, req.FlightID, req.FareClass)
	if err != nil {
		return nil, err
	}

	if inv.AvailableSeats < len(req.Seats) {
		return nil, fmt.Errorf("%w: flight %s class %s has %d seats, requested %d",
			domain.ErrInsufficientInventory, req.FlightID, req.FareClass, inv.AvailableSeats, len(req.Seats))
	}

	if err := s.ledger.ApplyDelta(ctx, req.FlightID, req.FareClass, -len(req.Seats)); err != nil {
		return nil, err
	}

	hold := &domain.InventoryHold{
		ID:        uuid.New(),
		FlightID:  req.FlightID,
		FareClass: req.FareClass,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		SeatCount: len(req.Seats),
		Seats:     req.Seats,
		Status:    domain.HoldActive,
		ExpiresAt: time.Now().Add(time.Duration(req.DurationMinutes) * time.Minute),
		CreatedAt: time.Now(),
	}

	if err := s.holdRepo.Create(ctx, hold); err != nil {
		// Hold row never existed, so credit the debit back before failing.
		if creditErr := s.ledger.ApplyDelta(ctx, req.FlightID, req.FareClass, len(req.Seats)); creditErr != nil {
			s.logger.WithError(creditErr).WithField("flight_id", req.FlightID).
				Error("Failed to credit inventory back after hold insert failure")
		}
		return nil, fmt.Errorf("failed to persist hold: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"hold_id":   hold.ID,
		"flight_id": req.FlightID,
		"seats":     len(req.Seats),
	}).Info("Seats held")

	return hold, nil
}

// GetHold looks a hold up by id.
func (s *HoldService) GetHold(ctx context.Context, holdID uuid.UUID) (*domain.InventoryHold, error) {
	return s.holdRepo.GetByID(ctx, holdID)
}

// ReleaseHold credits the held seats back and marks the hold RELEASED.
// Idempotent: a hold that is already terminal is a success with no effect.
func (s *HoldService) ReleaseHold(ctx context.Context, holdID uuid.UUID) error {
	return s.releaseAs(ctx, holdID, domain.HoldReleased)
}

// ConfirmHold marks an ACTIVE hold CONFIRMED. The seats stay debited — they
// are sold now, not released. Confirming a non-ACTIVE hold is a no-op so
// retried confirmation requests stay safe.
func (s *HoldService) ConfirmHold(ctx context.Context, holdID uuid.UUID) error {
	hold, err := s.holdRepo.GetByID(ctx, holdID)
	if err != nil {
		return err
	}
	if !hold.IsActive() {
		return nil
	}

	// Serialize against release/expiry on the same flight so a confirm
	// cannot interleave with a reaper sweep crediting the seats back.
	lease, err := s.locker.Acquire(ctx, flightLockKey(hold.FlightID), holdLockWait, holdLockTTL)
	if err != nil {
		return err
	}
	defer s.releaseLease(lease)

	moved, err := s.holdRepo.TransitionFromActive(ctx, holdID, domain.HoldConfirmed)
	if err != nil {
		return err
	}
	if !moved {
		// Lost the race to a release path; treat as the idempotent no-op.
		return nil
	}

	s.logger.WithField("hold_id", holdID).Info("Hold confirmed")
	return nil
}

// RunExpiryReaper sweeps expired ACTIVE holds on a fixed period until ctx is
// cancelled. Each release is independently atomic; one failing hold never
// blocks the rest of the sweep.
func (s *HoldService) RunExpiryReaper(ctx context.Context) {
	ticker := time.NewTicker(reaperInterval)
	defer ticker.Stop()

	s.logger.WithField("interval", reaperInterval.String()).Info("Expiry reaper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Expiry reaper stopped")
			return
		case <-ticker.C:
			s.SweepExpiredHolds(ctx)
		}
	}
}

// SweepExpiredHolds performs one reaper pass, draining full batches until the
// expiry backlog is gone so a burst larger than one batch does not have to
// wait out extra ticks. A pass that releases nothing stops the drain: holds
// that keep failing stay expired and would loop forever otherwise.
func (s *HoldService) SweepExpiredHolds(ctx context.Context) {
	found, released := 0, 0

	for {
		holds, err := s.holdRepo.GetExpired(ctx, time.Now(), reaperBatchSize)
		if err != nil {
			s.logger.WithError(err).Error("Failed to query expired holds")
			break
		}
		if len(holds) == 0 {
			break
		}

		found += len(holds)
		releasedThisBatch := 0
		for _, hold := range holds {
			if ctx.Err() != nil {
				return
			}
			if err := s.releaseAs(ctx, hold.ID, domain.HoldExpired); err != nil {
				s.logger.WithError(err).WithField("hold_id", hold.ID).Error("Failed to expire hold")
				continue
			}
			releasedThisBatch++
		}
		released += releasedThisBatch

		if len(holds) < reaperBatchSize || releasedThisBatch == 0 {
			break
		}
	}

	if found == 0 {
		return
	}

	s.logger.WithFields(logrus.Fields{
		"found":    found,
		"released": released,
	}).Info("Expired holds swept")
}

func (s *HoldService) releaseAs(ctx context.Context, holdID uuid.UUID, terminal domain.HoldStatus) error {
	hold, err := s.holdRepo.GetByID(ctx, holdID)
	if err != nil {
		return err
	}
	if !hold.IsActive() {
		return nil
	}

	lease, err := s.locker.Acquire(ctx, flightLockKey(hold.FlightID), holdLockWait, holdLockTTL)
	if err != nil {
		return err
	}
	defer s.releaseLease(lease)

	// Re-read under the lease: the requester and the reaper jointly own the
	// hold, and whichever acted first must win exactly once.
	hold, err = s.holdRepo.GetByID(ctx, holdID)
	if err != nil {
		return err
	}
	if !hold.IsActive() {
		return nil
	}

	// Credit and transition commit together; a failed release leaves the
	// hold ACTIVE with nothing credited, so retrying it is always safe.
	moved, err := s.holdRepo.ReleaseWithCredit(ctx, hold, terminal)
	if err != nil {
		return fmt.Errorf("failed to release hold %s: %w", holdID, err)
	}
	if !moved {
		// Lost the race to another release path; the lease makes this rare.
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"hold_id": holdID,
		"status":  terminal,
		"seats":   hold.SeatCount,
	}).Info("Hold released")
	return nil
}

func (s *HoldService) releaseLease(lease ports.Lease) {
	// Release with a fresh context so an aborted request still frees the key.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := lease.Release(ctx); err != nil {
		s.logger.WithError(err).WithField("key", lease.Key()).Warn("Failed to release lease")
	}
}
