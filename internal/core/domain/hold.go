package domain

import (
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldActive    HoldStatus = "ACTIVE"
	HoldConfirmed HoldStatus = "CONFIRMED"
	HoldReleased  HoldStatus = "RELEASED"
	HoldExpired   HoldStatus = "EXPIRED"
)

// InventoryHold is a temporary reservation of seats against one
// (flight, fare class) inventory row. While ACTIVE its SeatCount has been
// debited from the inventory exactly once; RELEASED and EXPIRED credit it
// back exactly once; CONFIRMED keeps the seats debited for good.
type InventoryHold struct {
	ID        uuid.UUID
	FlightID  uuid.UUID
	FareClass string
	UserID    *uuid.UUID
	SessionID string
	SeatCount int
	Seats     []string
	Status    HoldStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (h *InventoryHold) IsActive() bool {
	return h.Status == HoldActive
}

// ExpiredBy reports whether the hold has outlived its window at the given
// instant. Expiry is a status observation, not a timer: inventory is only
// credited back once a release path actually runs.
func (h *InventoryHold) ExpiredBy(now time.Time) bool {
	return h.Status == HoldActive && now.After(h.ExpiresAt)
}
