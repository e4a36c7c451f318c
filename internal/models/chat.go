package models

import "time"

// Sender tags who wrote a chat message
type Sender string

const (
	SenderVisitor Sender = "visitor"
	SenderBot     Sender = "bot"
)

// ChatMessage is one entry of a chat transcript
type ChatMessage struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Topic  string    `json:"topic,omitempty"`
	SentAt time.Time `json:"sent_at"`
}
