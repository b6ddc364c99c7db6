package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"taxifare/internal/types"
)

type stubBackend struct {
	err     error
	created []Booking
}

func (s *stubBackend) Create(ctx context.Context, b Booking) error {
	s.created = append(s.created, b)
	return s.err
}

type stubNotifier struct {
	enabled bool
	err     error
	sent    []Booking
}

func (s *stubNotifier) Enabled() bool { return s.enabled }

func (s *stubNotifier) Send(ctx context.Context, b Booking) error {
	s.sent = append(s.sent, b)
	return s.err
}

type stubQuoter struct {
	fare types.Money
	err  error
}

func (s stubQuoter) Quote(ctx context.Context, e Enquiry) (types.Money, error) {
	return s.fare, s.err
}

func validEnquiry() Enquiry {
	return Enquiry{
		Name:       "Priya Raman",
		Email:      "priya@example.com",
		Phone:      "9876543210",
		Pickup:     "Tiruvannamalai",
		Drop:       "Chennai Airport",
		Category:   "premium sedan",
		TripType:   "roundTrip",
		Date:       "2026-03-14",
		Time:       "06:30",
		Passengers: 3,
	}
}

func TestValidateEnquiry(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *Enquiry)
		wantField string
	}{
		{"valid", func(e *Enquiry) {}, ""},
		{"phone starts with 5", func(e *Enquiry) { e.Phone = "5876543210" }, "phone"},
		{"phone too short", func(e *Enquiry) { e.Phone = "987654321" }, "phone"},
		{"phone with prefix", func(e *Enquiry) { e.Phone = "+919876543210" }, "phone"},
		{"missing name", func(e *Enquiry) { e.Name = "" }, "name"},
		{"bad email", func(e *Enquiry) { e.Email = "priya@" }, "email"},
		{"unknown category", func(e *Enquiry) { e.Category = "bus" }, "category"},
		{"alias category", func(e *Enquiry) { e.Category = "luxury" }, ""},
		{"bad trip type", func(e *Enquiry) { e.TripType = "multiCity" }, "tripType"},
		{"empty trip type", func(e *Enquiry) { e.TripType = "" }, ""},
		{"bad date", func(e *Enquiry) { e.Date = "14/03/2026" }, "date"},
		{"bad time", func(e *Enquiry) { e.Time = "6:30pm" }, "time"},
		{"too many passengers", func(e *Enquiry) { e.Passengers = 20 }, "passengers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEnquiry()
			tt.mutate(&e)
			err := ValidateEnquiry(e)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateEnquiry() error = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.wantField {
				t.Errorf("fields = %+v, want only %q", verr.Fields, tt.wantField)
			}
			if verr.Fields[0].Message == "" {
				t.Error("empty field message")
			}
		})
	}
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustRegister with an empty tag did not panic")
		}
	}()
	mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
}

func TestValidate_CustomTagsRegistered(t *testing.T) {
	cases := []struct{ tag, good, bad string }{
		{"inphone", "9876543210", "12345"},
		{"category", "sedan", "helicopter"},
		{"triptype", "roundTrip", "sideways"},
	}
	for _, tc := range cases {
		if err := Validate.Var(tc.good, tc.tag); err != nil {
			t.Errorf("%s rejected %q: %v", tc.tag, tc.good, err)
		}
		if err := Validate.Var(tc.bad, tc.tag); err == nil {
			t.Errorf("%s accepted %q", tc.tag, tc.bad)
		}
	}
}

func TestService_Submit(t *testing.T) {
	backend := &stubBackend{}
	notifier := &stubNotifier{enabled: true}
	svc := NewService(backend, notifier, stubQuoter{fare: types.INR(4200)}, nil)

	receipt, err := svc.Submit(context.Background(), validEnquiry())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !receipt.EmailSent || receipt.EmailError != "" {
		t.Errorf("receipt = %+v", receipt)
	}
	if len(backend.created) != 1 || len(notifier.sent) != 1 {
		t.Fatalf("created=%d sent=%d", len(backend.created), len(notifier.sent))
	}
	b := backend.created[0]
	if b.ID == "" || b.Category != "Premium Sedan" || b.TripType != "roundTrip" || b.Status != "pending" {
		t.Errorf("booking = %+v", b)
	}
	if b.EstimatedFare == nil || b.EstimatedFare.Amount != 4200 {
		t.Errorf("estimated fare = %+v", b.EstimatedFare)
	}
	if notifier.sent[0].ID != b.ID {
		t.Error("email sent for a different booking")
	}
}

func TestService_Submit_ValidationStopsEverything(t *testing.T) {
	backend := &stubBackend{}
	notifier := &stubNotifier{enabled: true}
	e := validEnquiry()
	e.Phone = "12345"

	_, err := NewService(backend, notifier, nil, nil).Submit(context.Background(), e)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(backend.created) != 0 || len(notifier.sent) != 0 {
		t.Error("side effects after validation failure")
	}
}

func TestService_Submit_BackendFailure(t *testing.T) {
	backend := &stubBackend{err: &SubmissionError{Upstream: "booking backend", Status: 409, Reason: "duplicate booking"}}
	notifier := &stubNotifier{enabled: true}

	_, err := NewService(backend, notifier, nil, nil).Submit(context.Background(), validEnquiry())
	if !errors.Is(err, ErrSubmission) {
		t.Fatalf("err = %v, want ErrSubmission", err)
	}
	var serr *SubmissionError
	if !errors.As(err, &serr) || serr.Reason != "duplicate booking" {
		t.Errorf("reason lost: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Error("email sent after backend failure")
	}
}

func TestService_Submit_EmailFailureIsReported(t *testing.T) {
	notifier := &stubNotifier{enabled: true, err: errors.New("emailjs 400")}
	receipt, err := NewService(&stubBackend{}, notifier, stubQuoter{err: errors.New("no rate")}, nil).Submit(context.Background(), validEnquiry())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.EmailSent || receipt.EmailError != "emailjs 400" {
		t.Errorf("receipt = %+v", receipt)
	}
	if receipt.Booking.EstimatedFare != nil {
		t.Errorf("fare = %+v, want nil after quote failure", receipt.Booking.EstimatedFare)
	}
}

func TestService_Submit_EmailDisabled(t *testing.T) {
	notifier := &stubNotifier{enabled: false}
	receipt, err := NewService(&stubBackend{}, notifier, nil, nil).Submit(context.Background(), validEnquiry())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.EmailSent || len(notifier.sent) != 0 {
		t.Errorf("receipt = %+v sent=%d", receipt, len(notifier.sent))
	}
}
