package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "INITIATED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSuccess   PaymentStatus = "SUCCESS"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentTimeout   PaymentStatus = "TIMEOUT"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment records one payment attempt against a booking. A booking carries
// at most one successful payment; replayed requests against a confirmed
// booking get the existing record back.
type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Gateway       string
	GatewayTxnID  string
	Amount        float64
	Currency      string
	Method        string
	Status        PaymentStatus
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
