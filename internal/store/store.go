// Package store keeps chat messages in memory, grouped by channel.
package store

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultChannel is used when a request names no channel.
const DefaultChannel = "text:general"

// Message is a single chat message.
type Message struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	Text      string         `json:"text"`
	At        string         `json:"at"`
	Reactions map[string]int `json:"reactions"`
}

// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	byChannel map[string][]Message
}

// New returns an empty store.
func New() *Store {
	return &Store{byChannel: make(map[string][]Message)}
}

// NewSeeded returns a store with a couple of welcome messages in the
// default channel.
func NewSeeded(now time.Time) *Store {
	s := New()
	at := now.UTC().Format(time.RFC3339)
	s.Append(DefaultChannel, Message{
		ID:        seedID(),
		Author:    "alex",
		Text:      "Welcome to Speakset 👋",
		At:        at,
		Reactions: map[string]int{},
	})
	s.Append(DefaultChannel, Message{
		ID:        seedID(),
		Author:    "rhea",
		Text:      "Backend is live with Go 🔥",
		At:        at,
		Reactions: map[string]int{"🔥": 2},
	})
	return s
}

func seedID() string { return "seed_" + uuid.NewString() }

// List returns a deep copy of the messages in channel, oldest first. The
// result is never nil.
func (s *Store) List(channel string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.byChannel[channel]
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		m.Reactions = maps.Clone(m.Reactions)
		out[i] = m
	}
	return out
}

// Append adds a copy of m to channel.
func (s *Store) Append(channel string, m Message) {
	if m.Reactions == nil {
		m.Reactions = map[string]int{}
	} else {
		m.Reactions = maps.Clone(m.Reactions)
	}
	s.mu.Lock()
	s.byChannel[channel] = append(s.byChannel[channel], m)
	s.mu.Unlock()
}

// Channels returns the number of channels holding at least one message.
func (s *Store) Channels() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byChannel)
}
