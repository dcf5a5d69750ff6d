package domain

import (
	"github.com/google/uuid"
)

// SeatInventory is the authoritative available-seat counter for one
// (flight, fare class) pair. AvailableSeats only changes through a CAS
// write on Version; readers may observe it freely.
type SeatInventory struct {
	ID             uuid.UUID
	FlightID       uuid.UUID
	FareClass      string
	CabinClass     string
	TotalSeats     int
	AvailableSeats int
	Price          float64
	Version        int
}

// CanApply reports whether adding delta keeps the counter within
// [0, TotalSeats].
func (i *SeatInventory) CanApply(delta int) bool {
	next := i.AvailableSeats + delta
	return next >= 0 && next <= i.TotalSeats
}
