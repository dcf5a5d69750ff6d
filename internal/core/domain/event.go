package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingEvent is the self-contained payload published on booking state
// transitions. Consumers (notification pipeline) must not need follow-up
// lookups, so contact details travel with the event.
type BookingEvent struct {
	BookingID uuid.UUID     `json:"booking_id"`
	PNR       string        `json:"pnr"`
	UserID    uuid.UUID     `json:"user_id"`
	Status    BookingStatus `json:"status"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	UserEmail string        `json:"user_email,omitempty"`
	UserPhone string        `json:"user_phone,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
