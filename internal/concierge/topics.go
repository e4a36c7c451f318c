package concierge

// Topic names
const (
	TopicBooking  = "booking"
	TopicMenu     = "menu"
	TopicHours    = "hours"
	TopicLocation = "location"
	TopicFallback = "fallback"
)

// Welcome opens every chat transcript
const Welcome = "Welcome to Restoran! How may I assist you today?"

// DefaultTopics returns the site's keyword groups in match order
func DefaultTopics() []Topic {
	return []Topic{
		{
			Name:     TopicBooking,
			Keywords: []string{"book", "reservation"},
			Reply:    `I'd be happy to help you make a reservation! Please click the "Book a Table" button to choose your preferred date and time.`,
		},
		{
			Name:     TopicMenu,
			Keywords: []string{"menu", "food"},
			Reply:    "We offer exquisite French and Italian cuisine. Our signature dishes include Wagyu Beef Steak and Truffle Risotto. Would you like to see our full menu?",
		},
		{
			Name:     TopicHours,
			Keywords: []string{"hours", "open"},
			Reply:    "We're open Tuesday to Sunday, 5:00 PM - 11:00 PM. We're closed on Mondays.",
		},
		{
			Name:     TopicLocation,
			Keywords: []string{"location", "address"},
			Reply:    "We're located at 123 Gourmet Street, Downtown District. You can find directions in our contact section!",
		},
		{
			Name:  TopicFallback,
			Reply: "Thank you for your message! For specific inquiries, please call us at (555) 123-4567 or visit our contact section.",
		},
	}
}

// MustDefault builds a selector over DefaultTopics
func MustDefault() *Selector {
	s, err := NewSelector(DefaultTopics())
	if err != nil {
		panic(err)
	}
	return s
}
