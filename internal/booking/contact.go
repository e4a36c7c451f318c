package booking

import (
	"errors"
	"fmt"

	"restoran/internal/models"
)

const (
	ContactReceivedMessage = "Message sent successfully!"
	SubscribedMessage      = "Successfully subscribed to newsletter!"
)

var (
	ErrInvalidContact = errors.New("invalid contact message")
	ErrInvalidEmail   = errors.New("invalid newsletter email")
)

// ValidateContact checks a contact-section message before it is acknowledged
func ValidateContact(msg models.ContactMessage) error {
	if err := validate.Struct(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}
	return nil
}

// ValidateSubscription checks the newsletter signup address
func ValidateSubscription(sub models.NewsletterSubscription) error {
	if err := validate.Struct(sub); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	return nil
}
