package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"restoran/internal/concierge"
	"restoran/internal/models"
)

// DefaultReplyDelay is how long the responder "types" before answering
const DefaultReplyDelay = time.Second

const subscriberBuffer = 16

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSessionClosed   = errors.New("chat session is closed")
	ErrSessionNotFound = errors.New("chat session not found")
)

// ReplyHook observes every scripted reply once it has been appended
type ReplyHook func(reply concierge.Reply)

// Option configures a Session
type Option func(*Session)

// WithReplyHook registers a callback run after each reply is appended
func WithReplyHook(hook ReplyHook) Option {
	return func(s *Session) { s.onReply = hook }
}

// Session is one visitor's conversation with the scripted responder
type Session struct {
	ID string

	selector   *concierge.Selector
	delay      time.Duration
	transcript *Transcript
	onReply    ReplyHook

	mu          sync.Mutex
	subscribers map[int]chan models.ChatMessage
	nextSub     int
	lastActive  time.Time
	closed      bool
}

// NewSession opens a conversation whose transcript starts with the welcome message
func NewSession(id string, selector *concierge.Selector, delay time.Duration, opts ...Option) *Session {
	s := &Session{
		ID:          id,
		selector:    selector,
		delay:       delay,
		transcript:  NewTranscript(),
		subscribers: make(map[int]chan models.ChatMessage),
		lastActive:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.transcript.Append(models.ChatMessage{
		Sender: models.SenderBot,
		Text:   concierge.Welcome,
		SentAt: s.lastActive,
	})
	return s
}

// Send records the visitor's text and schedules the scripted answer.
// The reply is chosen from this message alone and appended once the delay
// elapses; there is no way to cancel it.
func (s *Session) Send(text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrSessionClosed
	}
	now := time.Now()
	s.lastActive = now
	s.mu.Unlock()

	msg := models.ChatMessage{Sender: models.SenderVisitor, Text: text, SentAt: now}
	s.deliver(msg)

	reply := s.selector.Reply(text)
	time.AfterFunc(s.delay, func() {
		s.deliver(models.ChatMessage{
			Sender: models.SenderBot,
			Text:   reply.Text,
			Topic:  reply.Topic,
			SentAt: time.Now(),
		})
		if s.onReply != nil {
			s.onReply(reply)
		}
	})

	return msg, nil
}

// deliver appends to the transcript and fans the message out to subscribers
func (s *Session) deliver(msg models.ChatMessage) {
	s.transcript.Append(msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe streams every message appended from now on.
// Call the returned function to stop; it closes the channel.
func (s *Session) Subscribe() (<-chan models.ChatMessage, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.ChatMessage, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
		})
	}
}

// Messages returns the transcript so far
func (s *Session) Messages() []models.ChatMessage {
	return s.transcript.Messages()
}

// Watched reports whether a live connection is subscribed
func (s *Session) Watched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) > 0
}

// LastActive is the time of the latest visitor message, or the opening time
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close ends the conversation and releases all subscribers
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}
