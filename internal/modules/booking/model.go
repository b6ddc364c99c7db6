// README: Booking enquiry model, validation rules and sentinel errors.
package booking

import (
	"errors"
	"fmt"
	"time"

	"taxifare/internal/types"
)

var (
	ErrValidation = errors.New("booking validation failed")
	ErrSubmission = errors.New("booking submission failed")
)

// Enquiry is what the booking form posts.
type Enquiry struct {
	Name       string `json:"name" validate:"required,min=2,max=80"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,inphone"`
	Pickup     string `json:"pickup" validate:"required,max=120"`
	Drop       string `json:"drop" validate:"required,max=120"`
	Category   string `json:"category" validate:"required,category"`
	TripType   string `json:"tripType" validate:"omitempty,triptype"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
	Passengers int    `json:"passengers" validate:"omitempty,min=1,max=12"`
	Notes      string `json:"notes" validate:"max=500"`
}

// Booking is the record sent to the booking backend.
type Booking struct {
	ID            types.ID     `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Pickup        string       `json:"pickup"`
	Drop          string       `json:"drop"`
	Category      string       `json:"category"`
	TripType      string       `json:"tripType"`
	Date          string       `json:"date"`
	Time          string       `json:"time"`
	Passengers    int          `json:"passengers"`
	Notes         string       `json:"notes,omitempty"`
	EstimatedFare *types.Money `json:"estimatedFare,omitempty"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Receipt reports what happened to each side effect of a submission.
type Receipt struct {
	Booking    Booking `json:"booking"`
	EmailSent  bool    `json:"emailSent"`
	EmailError string  `json:"emailError,omitempty"`
}

// ValidationError carries one message per failing field.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", ErrValidation, len(e.Fields))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SubmissionError keeps the upstream's own reason when it gave one.
type SubmissionError struct {
	Upstream string
	Status   int
	Reason   string
	Err      error
}

func (e *SubmissionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", ErrSubmission, e.Upstream, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSubmission, e.Upstream, e.Err)
	}
	return fmt.Sprintf("%s: %s: status %d", ErrSubmission, e.Upstream, e.Status)
}

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

func (e *SubmissionError) Unwrap() error { return e.Err }
