package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skyfare/flight-booking/internal/core/domain"
)

type InventoryRepository interface {
	GetByFlightAndFareClass(ctx context.Context, flightID uuid.UUID, fareClass string) (*domain.SeatInventory, error)
	Create(ctx context.Context, inv *domain.SeatInventory) error
	// ApplyDelta performs the CAS write: it adds delta to available_seats and
	// bumps version, but only when the persisted version equals
	// expectedVersion and the result stays within [0, total_seats].
	// Returns domain.ErrVersionConflict when no row matched.
	ApplyDelta(ctx context.Context, flightID uuid.UUID, fareClass string, delta int, expectedVersion int) error
}

type HoldRepository interface {
	Create(ctx context.Context, hold *domain.InventoryHold) error
	GetByID(ctx context.Context, holdID uuid.UUID) (*domain.InventoryHold, error)
	// TransitionFromActive moves the hold out of ACTIVE into status. It
	// reports false when the hold was not ACTIVE anymore, which keeps the
	// state machine's terminal states absorbing at the database level.
	TransitionFromActive(ctx context.Context, holdID uuid.UUID, status domain.HoldStatus) (bool, error)
	// ReleaseWithCredit moves an ACTIVE hold into status and credits its
	// seats back to the inventory counter in one transaction, so the hold
	// can never end up terminal without the credit or credited while still
	// ACTIVE. Reports false when the hold was not ACTIVE anymore.
	ReleaseWithCredit(ctx context.Context, hold *domain.InventoryHold, status domain.HoldStatus) (bool, error)
	GetExpired(ctx context.Context, now time.Time, limit int) ([]domain.InventoryHold, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	// MarkCancelled moves the booking to CANCELLED unless it already sits in
	// a terminal state. Reports false when the guard blocked the write, so
	// CONFIRMED and CANCELLED absorb at the database level.
	MarkCancelled(ctx context.Context, bookingID uuid.UUID) (bool, error)
	// ConfirmWithPayment inserts the payment row and moves the booking to
	// CONFIRMED with the payment linked, in one transaction. A booking that
	// went terminal in the meantime rolls the payment row back too.
	ConfirmWithPayment(ctx context.Context, bookingID uuid.UUID, payment *domain.Payment) error
}

type PaymentRepository interface {
	GetByID(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
