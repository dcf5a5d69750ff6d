package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingCreated        BookingStatus = "CREATED"
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingConfirmed      BookingStatus = "CONFIRMED"
	BookingCancelled      BookingStatus = "CANCELLED"
	BookingPaymentFailed  BookingStatus = "PAYMENT_FAILED"
	BookingExpired        BookingStatus = "EXPIRED"
)

type Passenger struct {
	FirstName      string
	LastName       string
	Age            int
	Gender         string
	DocumentType   string
	DocumentNumber string
}

type SeatSelection struct {
	FlightID  uuid.UUID
	SeatNo    string
	FareClass string
}

type Booking struct {
	ID                   uuid.UUID
	PNR                  string
	UserID               uuid.UUID
	ItineraryID          uuid.UUID
	Status               BookingStatus
	Amount               float64
	Currency             string
	Passengers           []Passenger
	Seats                []SeatSelection
	HoldID               *uuid.UUID
	PaymentTransactionID *uuid.UUID
	CreatedAt            time.Time
	ExpiresAt            time.Time
	UpdatedAt            time.Time
}

// IsTerminal reports whether the booking can no longer change state.
// CONFIRMED and CANCELLED absorb; every other status may still move.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCancelled
}
