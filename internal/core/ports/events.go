package ports

import (
	"context"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

// EventPublisher emits booking state-change events with at-least-once
// semantics, keyed by booking id so per-booking ordering is preserved.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error
}
