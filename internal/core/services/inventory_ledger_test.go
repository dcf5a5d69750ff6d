package services_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/ports/mocks"
	"github.com/skyfare/flight-booking/internal/core/services"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestApplyDelta_Success(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	inv := &domain.SeatInventory{
		FlightID:       flightID,
		FareClass:      "Y",
		TotalSeats:     100,
		AvailableSeats: 40,
		Version:        7,
	}

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(inv, nil).Once()
	invRepo.On("ApplyDelta", ctx, flightID, "Y", -3, 7).Return(nil).Once()

	err := ledger.ApplyDelta(ctx, flightID, "Y", -3)

	assert.NoError(t, err)
}

func TestApplyDelta_RetriesOnVersionConflict(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	stale := &domain.SeatInventory{FlightID: flightID, FareClass: "Y", TotalSeats: 100, AvailableSeats: 40, Version: 7}
	fresh := &domain.SeatInventory{FlightID: flightID, FareClass: "Y", TotalSeats: 100, AvailableSeats: 39, Version: 8}

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(stale, nil).Once()
	invRepo.On("ApplyDelta", ctx, flightID, "Y", -3, 7).Return(domain.ErrVersionConflict).Once()
	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(fresh, nil).Once()
	invRepo.On("ApplyDelta", ctx, flightID, "Y", -3, 8).Return(nil).Once()

	err := ledger.ApplyDelta(ctx, flightID, "Y", -3)

	assert.NoError(t, err)
}

func TestApplyDelta_ConcurrencyExhausted(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	inv := &domain.SeatInventory{FlightID: flightID, FareClass: "Y", TotalSeats: 100, AvailableSeats: 40, Version: 7}

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(inv, nil).Times(3)
	invRepo.On("ApplyDelta", ctx, flightID, "Y", -3, 7).Return(domain.ErrVersionConflict).Times(3)

	err := ledger.ApplyDelta(ctx, flightID, "Y", -3)

	assert.ErrorIs(t, err, domain.ErrConcurrencyExhausted)
}

func TestApplyDelta_CapacityViolationIsNotRetried(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	inv := &domain.SeatInventory{FlightID: flightID, FareClass: "Y", TotalSeats: 100, AvailableSeats: 2, Version: 7}

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(inv, nil).Once()

	err := ledger.ApplyDelta(ctx, flightID, "Y", -3)

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	invRepo.AssertNotCalled(t, "ApplyDelta")
}

func TestApplyDelta_CreditAboveTotalRejected(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	inv := &domain.SeatInventory{FlightID: flightID, FareClass: "Y", TotalSeats: 100, AvailableSeats: 99, Version: 7}

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(inv, nil).Once()

	err := ledger.ApplyDelta(ctx, flightID, "Y", 2)

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestCreateInventory(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()

	inv := &domain.SeatInventory{
		FlightID:   uuid.New(),
		FareClass:  "J",
		CabinClass: "BUSINESS",
		TotalSeats: 20,
		Price:      12000,
	}

	invRepo.On("Create", ctx, inv).Return(nil).Once()

	err := ledger.CreateInventory(ctx, inv)

	assert.NoError(t, err)
	assert.Equal(t, 20, inv.AvailableSeats)
	assert.NotEqual(t, uuid.Nil, inv.ID)
}

func TestCreateInventory_RejectsNonPositiveSeats(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	err := ledger.CreateInventory(context.Background(), &domain.SeatInventory{TotalSeats: 0})

	assert.Error(t, err)
	invRepo.AssertNotCalled(t, "Create")
}

func TestApplyDelta_ReadFailurePropagates(t *testing.T) {
	invRepo := mocks.NewInventoryRepository(t)
	ledger := services.NewInventoryLedger(invRepo, testLogger())

	ctx := context.Background()
	flightID := uuid.New()

	invRepo.On("GetByFlightAndFareClass", ctx, flightID, "Y").Return(nil, errors.New("db down")).Once()

	err := ledger.ApplyDelta(ctx, flightID, "Y", -1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConcurrencyExhausted)
}
