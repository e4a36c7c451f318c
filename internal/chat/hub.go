package chat

import (
	"sync"
	"time"

	"restoran/internal/concierge"

	"github.com/google/uuid"
)

// Hub keeps the open conversations, one per page view
type Hub struct {
	selector *concierge.Selector
	delay    time.Duration
	opts     []Option

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates a session registry; opts are applied to every session it opens
func NewHub(selector *concierge.Selector, delay time.Duration, opts ...Option) *Hub {
	return &Hub{
		selector: selector,
		delay:    delay,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open starts a new conversation
func (h *Hub) Open() *Session {
	s := NewSession(uuid.NewString(), h.selector, h.delay, h.opts...)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// Get looks a conversation up by id
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close ends a conversation and forgets it
func (h *Hub) Close(id string) error {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Sweep closes conversations idle for longer than maxIdle and returns how many.
// A session with a subscriber belongs to an open socket and ends with it.
func (h *Hub) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	h.mu.Lock()
	var stale []*Session
	for id, s := range h.sessions {
		if !s.Watched() && s.LastActive().Before(cutoff) {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// Len returns the number of open conversations
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
