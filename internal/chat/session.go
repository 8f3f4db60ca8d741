// Package chat keeps per-visitor chat sessions for the assistant widget.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/foti-africa/foti-web/internal/genai"
)

var (
	// ErrEmptyMessage is returned for a message that is blank after trimming.
	ErrEmptyMessage = errors.New("chat: empty message")
	// ErrBusy is returned while a previous message is still being answered.
	ErrBusy = errors.New("chat: reply in progress")
)

// Message is one entry in a session transcript.
type Message struct {
	Role    genai.Role `json:"role"`
	Text    string     `json:"text"`
	IsError bool       `json:"isError,omitempty"`
}

// Forwarder produces the assistant's reply. *genai.Forwarder implements it.
type Forwarder interface {
	Forward(ctx context.Context, history []genai.Message, text string) genai.Reply
}

// Session is one visitor's conversation. It is safe for concurrent use,
// but only one Send runs at a time.
type Session struct {
	ID string

	mu       sync.Mutex
	messages []Message
	loading  bool
	lastUsed time.Time
}

// NewSession returns a session holding only the assistant greeting.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		messages: []Message{{Role: genai.RoleModel, Text: genai.Greeting}},
		lastUsed: time.Now(),
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// Loading reports whether a reply is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastUsed returns when the session was last read or written.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

// Send appends text as a user message, asks f for a reply and appends it.
// The transcript grows by exactly two messages on success; the reply is
// flagged IsError when f could not produce a real answer. The history
// passed to f excludes the new message.
//
// Blank text returns ErrEmptyMessage and a concurrent call returns
// ErrBusy; neither changes the transcript.
func (s *Session) Send(ctx context.Context, f Forwarder, text string) ([]Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	history := make([]genai.Message, len(s.messages))
	for i, m := range s.messages {
		history[i] = genai.Message{Role: m.Role, Text: m.Text}
	}
	user := Message{Role: genai.RoleUser, Text: text}
	s.messages = append(s.messages, user)
	s.loading = true
	s.lastUsed = time.Now()
	s.mu.Unlock()

	reply := f.Forward(ctx, history, text)
	assistant := Message{Role: genai.RoleModel, Text: reply.Text, IsError: reply.IsError}

	s.mu.Lock()
	s.messages = append(s.messages, assistant)
	s.loading = false
	s.lastUsed = time.Now()
	s.mu.Unlock()

	return []Message{user, assistant}, nil
}
