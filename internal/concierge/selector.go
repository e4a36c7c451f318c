// Package concierge picks the scripted reply the chat widget sends back to a visitor.
package concierge

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

var (
	ErrNoFallback   = errors.New("no fallback topic configured")
	ErrEmptyKeyword = errors.New("empty keyword")
)

// Topic is one keyword group and the sentence sent when it matches.
// A topic without keywords is the fallback.
type Topic struct {
	Name     string
	Keywords []string
	Reply    string
}

// Reply is the selector's answer to a visitor message
type Reply struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// Selector matches a message against ordered keyword groups.
// It holds no per-conversation state and is safe for concurrent use.
type Selector struct {
	topics   []Topic
	owner    map[string]int
	matcher  *goahocorasick.Machine
	fallback int
}

// NewSelector builds the keyword automaton. Topic order is the match priority.
func NewSelector(topics []Topic) (*Selector, error) {
	s := &Selector{
		topics:   topics,
		owner:    make(map[string]int),
		fallback: -1,
	}

	var patterns []string
	for i, topic := range topics {
		if len(topic.Keywords) == 0 {
			if s.fallback < 0 {
				s.fallback = i
			}
			continue
		}
		for _, kw := range topic.Keywords {
			kw = strings.ToLower(kw)
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("topic %q: %w", topic.Name, ErrEmptyKeyword)
			}
			if _, seen := s.owner[kw]; !seen {
				s.owner[kw] = i
				patterns = append(patterns, kw)
			}
		}
	}
	if s.fallback < 0 {
		return nil, ErrNoFallback
	}

	if len(patterns) > 0 {
		slices.Sort(patterns)
		runes := make([][]rune, len(patterns))
		for i, p := range patterns {
			runes[i] = []rune(p)
		}
		m := new(goahocorasick.Machine)
		if err := m.Build(runes); err != nil {
			return nil, fmt.Errorf("failed to build keyword matcher: %w", err)
		}
		s.matcher = m
	}

	return s, nil
}

// Reply returns the sentence of the first topic, in declaration order,
// with a keyword contained in the lower-cased message.
func (s *Selector) Reply(message string) Reply {
	best := -1
	if s.matcher != nil {
		content := []rune(strings.ToLower(message))
		for _, term := range s.matcher.MultiPatternSearch(content, false) {
			if idx, ok := s.owner[string(term.Word)]; ok && (best < 0 || idx < best) {
				best = idx
			}
		}
	}
	if best < 0 {
		best = s.fallback
	}

	topic := s.topics[best]
	return Reply{Topic: topic.Name, Text: topic.Reply}
}

// Topics returns the configured keyword groups
func (s *Selector) Topics() []Topic {
	return slices.Clone(s.topics)
}
