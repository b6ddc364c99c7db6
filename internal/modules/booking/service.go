// README: Booking service validates an enquiry, records it with the backend, then notifies by email.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxifare/internal/logger"
	"taxifare/internal/metrics"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/types"
)

type Backend interface {
	Create(ctx context.Context, b Booking) error
}

type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, b Booking) error
}

// Quoter prices the enquiry for the record; a failure leaves the fare empty.
type Quoter interface {
	Quote(ctx context.Context, e Enquiry) (types.Money, error)
}

type Service struct {
	backend  Backend
	notifier Notifier
	quoter   Quoter
	log      logger.Logger
	now      func() time.Time
}

func NewService(backend Backend, notifier Notifier, quoter Quoter, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{backend: backend, notifier: notifier, quoter: quoter, log: log, now: time.Now}
}

// Submit returns a *ValidationError or a *SubmissionError from the backend
// call. An email failure does not fail the submission; it is reported on
// the receipt.
func (s *Service) Submit(ctx context.Context, e Enquiry) (Receipt, error) {
	if err := ValidateEnquiry(e); err != nil {
		return Receipt{}, err
	}

	b := s.newBooking(e)
	if s.quoter != nil {
		if fare, err := s.quoter.Quote(ctx, e); err == nil {
			b.EstimatedFare = &fare
		} else {
			s.log.Debug(ctx, "booking fare quote failed", "error", err.Error())
		}
	}

	if err := s.backend.Create(ctx, b); err != nil {
		metrics.UpstreamFailures.WithLabelValues("booking").Inc()
		s.log.Error(ctx, "booking submission failed", err, "booking_id", string(b.ID))
		return Receipt{}, err
	}
	s.log.Info(ctx, "booking recorded", "booking_id", string(b.ID), "category", b.Category)

	receipt := Receipt{Booking: b}
	if s.notifier == nil || !s.notifier.Enabled() {
		receipt.EmailError = "email not configured"
		return receipt, nil
	}
	if err := s.notifier.Send(ctx, b); err != nil {
		metrics.UpstreamFailures.WithLabelValues("email").Inc()
		s.log.Warn(ctx, "booking email failed", "booking_id", string(b.ID), "error", err.Error())
		receipt.EmailError = err.Error()
		return receipt, nil
	}
	receipt.EmailSent = true
	return receipt, nil
}

func (s *Service) newBooking(e Enquiry) Booking {
	category := e.Category
	if c, ok := pricing.ParseCategory(e.Category); ok {
		category = string(c)
	}
	tripType, err := pricing.ParseTripType(e.TripType)
	if err != nil {
		tripType = pricing.OneWay
	}
	passengers := e.Passengers
	if passengers == 0 {
		passengers = 1
	}
	return Booking{
		ID:         types.ID(uuid.NewString()),
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Pickup:     e.Pickup,
		Drop:       e.Drop,
		Category:   category,
		TripType:   string(tripType),
		Date:       e.Date,
		Time:       e.Time,
		Passengers: passengers,
		Notes:      e.Notes,
		Status:     "pending",
		CreatedAt:  s.now().UTC(),
	}
}
