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
	bookingLockWait = 5 * time.Second
	bookingLockTTL  = 15 * time.Second

	paymentLockWait = 5 * time.Second
	paymentLockTTL  = 30 * time.Second

	bookingExpiry = 15 * time.Minute

	// Flat per-passenger fare. Real pricing lives in a collaborator service.
	farePerPassenger = 5000.00
	defaultCurrency  = "INR"
)

func userLockKey(userID uuid.UUID) string {
	return "booking:user:" + userID.String()
}

func paymentLockKey(bookingID uuid.UUID) string {
	return "payment:" + bookingID.String()
}

type CreateBookingRequest struct {
	UserID      string                 `json:"user_id"`
	ItineraryID string                 `json:"itinerary_id"`
	Passengers  []domain.Passenger     `json:"passengers"`
	Seats       []domain.SeatSelection `json:"seats"`
	HoldID      string                 `json:"hold_id,omitempty"`
}

type PaymentRequest struct {
	BookingID string `json:"booking_id"`
	Gateway   string `json:"gateway"`
	Method    string `json:"payment_method"`
}

// BookingService orchestrates booking and payment. It is the unit of
// per-user serialization (booking creation) and per-booking idempotency
// (payment). Seat holding is a separate explicit step; the two flows are
// correlated only through the optional hold id on the booking.
type BookingService struct {
	bookingRepo ports.BookingRepository
	paymentRepo ports.PaymentRepository
	userRepo    ports.UserRepository
	holds       *HoldService
	locker      ports.LeaseLocker
	publisher   ports.EventPublisher
	logger      *logrus.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	paymentRepo ports.PaymentRepository,
	userRepo ports.UserRepository,
	holds *HoldService,
	locker ports.LeaseLocker,
	publisher ports.EventPublisher,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		holds:       holds,
		locker:      locker,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateBooking persists a CREATED booking under the per-user lease, so one
// user cannot race two concurrent creations into a double booking.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	itineraryID, err := uuid.Parse(req.ItineraryID)
	if err != nil {
		return nil, errors.New("invalid itinerary id")
	}
	if len(req.Passengers) == 0 {
		return nil, errors.New("no passengers provided")
	}

	var holdID *uuid.UUID
	if req.HoldID != "" {
		id, err := uuid.Parse(req.HoldID)
		if err != nil {
			return nil, errors.New("invalid hold id")
		}
		holdID = &id
	}

	lease, err := s.locker.Acquire(ctx, userLockKey(userID), bookingLockWait, bookingLockTTL)
	if err != nil {
		return nil, err
	}
	defer s.releaseLease(lease)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:          uuid.New(),
		PNR:         domain.GeneratePNR(),
		UserID:      userID,
		ItineraryID: itineraryID,
		Status:      domain.BookingCreated,
		Amount:      farePerPassenger * float64(len(req.Passengers)),
		Currency:    defaultCurrency,
		Passengers:  req.Passengers,
		Seats:       req.Seats,
		HoldID:      holdID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(bookingExpiry),
		UpdatedAt:   now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishEvent(ctx, booking, user)

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"pnr":        booking.PNR,
		"user_id":    userID,
	}).Info("Booking created")

	return booking, nil
}

// ProcessPayment confirms a booking through payment inside the per-booking
// idempotency boundary. Replaying the request against an already confirmed
// booking returns the original payment record and produces no new side
// effects. Nothing is written to the booking before the payment row exists,
// so a failure here never leaves a CONFIRMED booking without a payment.
func (s *BookingService) ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.Payment, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, errors.New("invalid booking id")
	}

	lease, err := s.locker.Acquire(ctx, paymentLockKey(bookingID), paymentLockWait, paymentLockTTL)
	if err != nil {
		return nil, err
	}
	defer s.releaseLease(lease)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingConfirmed {
		if booking.PaymentTransactionID == nil {
			return nil, fmt.Errorf("%w: booking %s confirmed without payment record",
				domain.ErrAlreadyConfirmed, bookingID)
		}
		s.logger.WithField("booking_id", bookingID).Info("Payment replay on confirmed booking")
		return s.paymentRepo.GetByID(ctx, *booking.PaymentTransactionID)
	}
	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrAlreadyCancelled, bookingID)
	}

	now := time.Now()
	payment := &domain.Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Gateway:   req.Gateway,
		// Gateway integration is a collaborator outside this core; the
		// transaction settles immediately here.
		GatewayTxnID: uuid.NewString(),
		Amount:       booking.Amount,
		Currency:     booking.Currency,
		Method:       req.Method,
		Status:       domain.PaymentSuccess,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Payment row and confirmation commit as one transaction, so a failure
	// here leaves no settled payment behind for a retry to duplicate.
	if err := s.bookingRepo.ConfirmWithPayment(ctx, bookingID, payment); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Status = domain.BookingConfirmed
	booking.PaymentTransactionID = &payment.ID

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", booking.UserID).Warn("User lookup failed for event contact info")
		user = nil
	}
	s.publishEvent(ctx, booking, user)

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"payment_id": payment.ID,
		"pnr":        booking.PNR,
	}).Info("Payment processed, booking confirmed")

	return payment, nil
}

// CancelBooking moves a non-terminal booking to CANCELLED and releases the
// associated seat hold, if any, so held inventory does not leak.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrAlreadyCancelled, bookingID)
	}
	if booking.Status == domain.BookingConfirmed {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrAlreadyConfirmed, bookingID)
	}

	moved, err := s.bookingRepo.MarkCancelled(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !moved {
		// A concurrent payment confirmed the booking between our read and
		// the guarded write; re-read to report which terminal state won.
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking.Status == domain.BookingConfirmed {
			return nil, fmt.Errorf("%w: booking %s", domain.ErrAlreadyConfirmed, bookingID)
		}
		return nil, fmt.Errorf("%w: booking %s", domain.ErrAlreadyCancelled, bookingID)
	}
	booking.Status = domain.BookingCancelled
	booking.UpdatedAt = time.Now()

	if booking.HoldID != nil {
		if err := s.holds.ReleaseHold(ctx, *booking.HoldID); err != nil {
			// The reaper will pick the hold up once it expires; the
			// cancellation itself already committed.
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id": bookingID,
				"hold_id":    *booking.HoldID,
			}).Error("Failed to release hold on cancellation")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"pnr":        booking.PNR,
	}).Info("Booking cancelled")

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return s.bookingRepo.GetByUser(ctx, userID)
}

func (s *BookingService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// publishEvent emits the booking state-change event. The publisher retries
// internally; an exhausted publish is logged loudly, never dropped silently.
func (s *BookingService) publishEvent(ctx context.Context, booking *domain.Booking, user *domain.User) {
	event := domain.BookingEvent{
		BookingID: booking.ID,
		PNR:       booking.PNR,
		UserID:    booking.UserID,
		Status:    booking.Status,
		Amount:    booking.Amount,
		Currency:  booking.Currency,
		Timestamp: time.Now(),
	}
	if user != nil {
		event.UserEmail = user.Email
		event.UserPhone = user.Phone
	}

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"status":     booking.Status,
		}).Error("Failed to publish booking event")
	}
}

func (s *BookingService) releaseLease(lease ports.Lease) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := lease.Release(ctx); err != nil {
		s.logger.WithError(err).WithField("key", lease.Key()).Warn("Failed to release lease")
	}
}
