package models

// BookingDraft is the unsaved state of the reservation form.
// Every field is free text; guests is kept as typed.
type BookingDraft struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Guests string `json:"guests" validate:"required"`
}

// BookingField names a single input of the reservation form
type BookingField string

const (
	BookingFieldName   BookingField = "name"
	BookingFieldEmail  BookingField = "email"
	BookingFieldPhone  BookingField = "phone"
	BookingFieldDate   BookingField = "date"
	BookingFieldTime   BookingField = "time"
	BookingFieldGuests BookingField = "guests"
)

// BookingFields lists the form inputs in display order
var BookingFields = []BookingField{
	BookingFieldName,
	BookingFieldEmail,
	BookingFieldPhone,
	BookingFieldDate,
	BookingFieldTime,
	BookingFieldGuests,
}

// ContactMessage is a note left through the contact section
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// NewsletterSubscription is a signup from the page footer
type NewsletterSubscription struct {
	Email string `json:"email" validate:"required,email"`
}
