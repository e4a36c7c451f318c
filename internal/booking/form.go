// Package booking holds the reservation form state and the contact form check.
// Nothing submitted here is stored.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"restoran/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	ConfirmedMessage  = "Reservation confirmed! We'll send you a confirmation email shortly."
	IncompleteMessage = "Please fill in all fields"
)

var (
	ErrIncomplete   = errors.New("booking is incomplete")
	ErrUnknownField = errors.New("unknown booking field")
)

var validate = validator.New()

// Outcome is what the visitor is told after pressing submit
type Outcome struct {
	Confirmed bool   `json:"success"`
	Message   string `json:"message"`
}

// Validate reports ErrIncomplete when any of the six fields is empty.
// Content is not checked: a single space is a filled field.
func Validate(draft models.BookingDraft) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
		return strings.ToLower(fe.Field())
	})
	return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
}

// Form is the booking modal's draft. Safe for concurrent use.
type Form struct {
	mu    sync.Mutex
	draft models.BookingDraft
}

// NewForm creates an empty form
func NewForm() *Form {
	return &Form{}
}

// Set updates one field by its form name
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch models.BookingField(field) {
	case models.BookingFieldName:
		f.draft.Name = value
	case models.BookingFieldEmail:
		f.draft.Email = value
	case models.BookingFieldPhone:
		f.draft.Phone = value
	case models.BookingFieldDate:
		f.draft.Date = value
	case models.BookingFieldTime:
		f.draft.Time = value
	case models.BookingFieldGuests:
		f.draft.Guests = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Draft returns a copy of the current field values
func (f *Form) Draft() models.BookingDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Submit confirms a complete draft and clears it; an incomplete draft is kept.
func (f *Form) Submit() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := Validate(f.draft); err != nil {
		return Outcome{Confirmed: false, Message: IncompleteMessage}
	}
	f.draft = models.BookingDraft{}
	return Outcome{Confirmed: true, Message: ConfirmedMessage}
}

// Close discards the draft
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.BookingDraft{}
}

// SubmitDraft runs a one-shot form over an already filled draft
func SubmitDraft(draft models.BookingDraft) Outcome {
	f := &Form{draft: draft}
	return f.Submit()
}
