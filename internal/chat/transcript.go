// Package chat runs the chat widget's conversations: an append-only transcript
// per page view and a scripted responder that answers after a short delay.
package chat

import (
	"slices"
	"sync"

	"restoran/internal/models"
)

// Transcript is the ordered message log of one conversation
type Transcript struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message at the end
func (t *Transcript) Append(msg models.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the log
func (t *Transcript) Messages() []models.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.messages)
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
