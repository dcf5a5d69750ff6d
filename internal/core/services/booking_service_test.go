package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/ports/mocks"
	"github.com/skyfare/flight-booking/internal/core/services"
)

type bookingFixture struct {
	bookingRepo *mocks.BookingRepository
	paymentRepo *mocks.PaymentRepository
	userRepo    *mocks.UserRepository
	invRepo     *mocks.InventoryRepository
	holdRepo    *mocks.HoldRepository
	locker      *mocks.LeaseLocker
	publisher   *mocks.EventPublisher
	svc         *services.BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		bookingRepo: mocks.NewBookingRepository(t),
		paymentRepo: mocks.NewPaymentRepository(t),
		userRepo:    mocks.NewUserRepository(t),
		invRepo:     mocks.NewInventoryRepository(t),
		holdRepo:    mocks.NewHoldRepository(t),
		locker:      mocks.NewLeaseLocker(t),
		publisher:   mocks.NewEventPublisher(t),
	}

	ledger := services.NewInventoryLedger(f.invRepo, testLogger())
	holds := services.NewHoldService(f.holdRepo, ledger, f.locker, testLogger())
	f.svc = services.NewBookingService(f.bookingRepo, f.paymentRepo, f.userRepo, holds, f.locker, f.publisher, testLogger())
	return f
}

func (f *bookingFixture) expectLease(t *testing.T, key string) {
	lease := mocks.NewLease(t)
	lease.On("Release", mock.Anything).Return(nil)
	f.locker.On("Acquire", mock.Anything, key, mock.Anything, mock.Anything).Return(lease, nil)
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	f.expectLease(t, "booking:user:"+userID.String())
	f.userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "a@b.c"}, nil).Once()
	f.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	f.publisher.On("PublishBookingEvent", ctx, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Status == domain.BookingCreated && e.UserID == userID
	})).Return(nil).Once()

	booking, err := f.svc.CreateBooking(ctx, services.CreateBookingRequest{
		UserID:      userID.String(),
		ItineraryID: uuid.NewString(),
		Passengers: []domain.Passenger{
			{FirstName: "Asha", LastName: "Rao", Age: 34},
			{FirstName: "Dev", LastName: "Rao", Age: 36},
		},
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingCreated, booking.Status)
		assert.Equal(t, 10000.0, booking.Amount)
		assert.Equal(t, "INR", booking.Currency)
		assert.Len(t, booking.PNR, 6)
	}
}

func TestCreateBooking_UserNotFound(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	f.expectLease(t, "booking:user:"+userID.String())
	f.userRepo.On("GetByID", ctx, userID).Return(nil, domain.ErrNotFound).Once()

	booking, err := f.svc.CreateBooking(ctx, services.CreateBookingRequest{
		UserID:      userID.String(),
		ItineraryID: uuid.NewString(),
		Passengers:  []domain.Passenger{{FirstName: "Asha"}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, booking)
	f.bookingRepo.AssertNotCalled(t, "Create")
}

func TestCreateBooking_InvalidUserID(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.CreateBooking(context.Background(), services.CreateBookingRequest{
		UserID:      "not-a-uuid",
		ItineraryID: uuid.NewString(),
		Passengers:  []domain.Passenger{{FirstName: "Asha"}},
	})

	assert.Error(t, err)
	assert.Nil(t, booking)
	f.locker.AssertNotCalled(t, "Acquire")
}

func TestProcessPayment_ConfirmsBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()
	userID := uuid.New()

	booking := &domain.Booking{
		ID:       bookingID,
		PNR:      "AB12CD",
		UserID:   userID,
		Status:   domain.BookingCreated,
		Amount:   5000,
		Currency: "INR",
	}

	f.expectLease(t, "payment:"+bookingID.String())
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil).Once()
	f.bookingRepo.On("ConfirmWithPayment", ctx, bookingID, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
	f.userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "a@b.c", Phone: "+91100"}, nil).Once()
	f.publisher.On("PublishBookingEvent", ctx, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Status == domain.BookingConfirmed && e.BookingID == bookingID && e.UserEmail == "a@b.c"
	})).Return(nil).Once()

	payment, err := f.svc.ProcessPayment(ctx, services.PaymentRequest{
		BookingID: bookingID.String(),
		Gateway:   "RAZORPAY",
		Method:    "UPI",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, payment) {
		assert.Equal(t, domain.PaymentSuccess, payment.Status)
		assert.Equal(t, 5000.0, payment.Amount)
		assert.Equal(t, bookingID, payment.BookingID)
	}
}

func TestProcessPayment_IdempotentReplay(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()
	paymentID := uuid.New()

	booking := &domain.Booking{
		ID:                   bookingID,
		Status:               domain.BookingConfirmed,
		PaymentTransactionID: &paymentID,
	}
	existing := &domain.Payment{ID: paymentID, BookingID: bookingID, Status: domain.PaymentSuccess}

	f.expectLease(t, "payment:"+bookingID.String())
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil).Once()
	f.paymentRepo.On("GetByID", ctx, paymentID).Return(existing, nil).Once()

	payment, err := f.svc.ProcessPayment(ctx, services.PaymentRequest{
		BookingID: bookingID.String(),
		Gateway:   "RAZORPAY",
		Method:    "UPI",
	})

	// Replay returns the original transaction: no new payment, no new event.
	assert.NoError(t, err)
	assert.Equal(t, paymentID, payment.ID)
	f.bookingRepo.AssertNotCalled(t, "ConfirmWithPayment")
	f.publisher.AssertNotCalled(t, "PublishBookingEvent")
}

func TestProcessPayment_CancelledRaceRollsBack(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	booking := &domain.Booking{ID: bookingID, Status: domain.BookingCreated, Amount: 5000, Currency: "INR"}

	f.expectLease(t, "payment:"+bookingID.String())
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil).Once()

	// The guarded confirm transaction found the booking cancelled; the
	// payment insert rolled back with it, so nothing settled and no event
	// may go out.
	f.bookingRepo.On("ConfirmWithPayment", ctx, bookingID, mock.AnythingOfType("*domain.Payment")).
		Return(domain.ErrAlreadyCancelled).Once()

	payment, err := f.svc.ProcessPayment(ctx, services.PaymentRequest{
		BookingID: bookingID.String(),
		Gateway:   "RAZORPAY",
		Method:    "UPI",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, payment)
	f.publisher.AssertNotCalled(t, "PublishBookingEvent")
}

func TestProcessPayment_CancelledBookingRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	booking := &domain.Booking{ID: bookingID, Status: domain.BookingCancelled}

	f.expectLease(t, "payment:"+bookingID.String())
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil).Once()

	payment, err := f.svc.ProcessPayment(ctx, services.PaymentRequest{BookingID: bookingID.String()})

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, payment)
}

func TestCancelBooking_Twice(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	created := &domain.Booking{ID: bookingID, Status: domain.BookingCreated}
	cancelled := &domain.Booking{ID: bookingID, Status: domain.BookingCancelled}

	f.bookingRepo.On("GetByID", ctx, bookingID).Return(created, nil).Once()
	f.bookingRepo.On("MarkCancelled", ctx, bookingID).Return(true, nil).Once()

	first, err := f.svc.CancelBooking(ctx, bookingID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, first.Status)

	f.bookingRepo.On("GetByID", ctx, bookingID).Return(cancelled, nil).Once()

	second, err := f.svc.CancelBooking(ctx, bookingID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, second)
}

func TestCancelBooking_LosesRaceToConcurrentPayment(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	created := &domain.Booking{ID: bookingID, Status: domain.BookingCreated}
	confirmed := &domain.Booking{ID: bookingID, Status: domain.BookingConfirmed}

	// A payment confirms the booking between the cancel's read and its
	// write; the guarded update must refuse to move CONFIRMED to CANCELLED.
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(created, nil).Once()
	f.bookingRepo.On("MarkCancelled", ctx, bookingID).Return(false, nil).Once()
	f.bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil).Once()

	booking, err := f.svc.CancelBooking(ctx, bookingID)

	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	assert.Nil(t, booking)
	f.holdRepo.AssertNotCalled(t, "ReleaseWithCredit")
}

func TestCancelBooking_ConfirmedRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()

	f.bookingRepo.On("GetByID", ctx, bookingID).
		Return(&domain.Booking{ID: bookingID, Status: domain.BookingConfirmed}, nil).Once()

	booking, err := f.svc.CancelBooking(ctx, bookingID)

	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	assert.Nil(t, booking)
	f.bookingRepo.AssertNotCalled(t, "MarkCancelled")
}

func TestCancelBooking_ReleasesLinkedHold(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	bookingID := uuid.New()
	holdID := uuid.New()
	flightID := uuid.New()

	booking := &domain.Booking{ID: bookingID, Status: domain.BookingCreated, HoldID: &holdID}
	hold := &domain.InventoryHold{ID: holdID, FlightID: flightID, FareClass: "Y", SeatCount: 2, Status: domain.HoldActive}

	f.bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil).Once()
	f.bookingRepo.On("MarkCancelled", ctx, bookingID).Return(true, nil).Once()

	f.holdRepo.On("GetByID", ctx, holdID).Return(hold, nil)
	f.expectLease(t, "seat-hold:"+flightID.String())
	f.holdRepo.On("ReleaseWithCredit", ctx, hold, domain.HoldReleased).Return(true, nil).Once()

	cancelled, err := f.svc.CancelBooking(ctx, bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
}
