// Package chat holds the per-conversation state machine: an append-only
// turn log, a synthesized presentation-only greeting, and the
// single-outstanding-request discipline around the completion client.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/llm"
	"github.com/mkovalenko/avatara/internal/prompt"
)

// State is the conversation session state.
type State string

const (
	StateEmpty    State = "empty"
	StateGreeted  State = "greeted"
	StateActive   State = "active"
	StateAwaiting State = "awaiting_reply"
)

// FallbackReply is appended as the assistant turn whenever the completion
// client fails. The raw error is exposed via LastError, never in the log.
const FallbackReply = "Sorry, I couldn't get a response right now. Please try again in a moment."

var (
	// ErrBusy refuses a submission while a reply is already in flight.
	ErrBusy = errors.New("a reply is already in progress")

	// ErrEmptyMessage refuses a whitespace-only submission.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSuperseded reports that the session was reset while the
	// completion was in flight; the result was discarded.
	ErrSuperseded = errors.New("session was reset")
)

// Recorder persists accepted turns. The synthesized greeting is never
// recorded. Persistence is best-effort: a failed record does not roll back
// the in-memory log.
type Recorder interface {
	Record(ctx context.Context, turn domain.ConversationTurn) error
}

// Session is one conversation scoped to a (coach, persona) pair. Methods
// are safe for use from bubbletea command goroutines.
type Session struct {
	mu sync.Mutex

	persona  *domain.Persona
	client   llm.Client
	recorder Recorder

	turns               []domain.ConversationTurn
	greetingSynthesized bool
	state               State
	generation          uint64
	lastErr             string
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder attaches a turn recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// NewSession creates an empty session for the given persona. A nil persona
// degrades to the generic assistant.
func NewSession(persona *domain.Persona, client llm.Client, opts ...Option) *Session {
	s := &Session{
		persona: persona,
		client:  client,
		state:   StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadHistory seeds the session with turns loaded from the record store.
// Loaded turns are real history: they are sent upstream on later requests.
func (s *Session) LoadHistory(turns []domain.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEmpty {
		return
	}
	s.turns = append(s.turns, turns...)
	if len(s.turns) > 0 {
		s.state = StateActive
	}
}

// Greet synthesizes the presentation-only greeting turn on first render.
// It is a no-op outside the Empty state and returns the greeting text.
func (s *Session) Greet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEmpty {
		if s.greetingSynthesized && len(s.turns) > 0 {
			return s.turns[0].Text
		}
		return ""
	}
	greeting := prompt.Greeting(s.persona)
	s.turns = append(s.turns, domain.ConversationTurn{
		Role: domain.RoleAssistant,
		Text: greeting,
	})
	s.greetingSynthesized = true
	s.state = StateGreeted
	return greeting
}

// Submit appends a user turn, performs exactly one completion call, and
// appends the assistant turn. While a call is in flight, further
// submissions are refused with ErrBusy; whitespace-only input is refused
// with ErrEmptyMessage and leaves the session untouched. A completion
// failure is converted into FallbackReply in the log, with the raw error
// available via LastError.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return "", ErrBusy
	}
	if trimmed == "" {
		s.mu.Unlock()
		return "", ErrEmptyMessage
	}

	userTurn := domain.ConversationTurn{Role: domain.RoleUser, Text: trimmed}
	history := s.outboundHistoryLocked()
	s.turns = append(s.turns, userTurn)
	s.state = StateAwaiting
	gen := s.generation
	instruction := prompt.Compile(s.persona)
	s.mu.Unlock()

	s.record(ctx, userTurn)

	reply, err := s.client.Complete(ctx, instruction, history, trimmed)

	s.mu.Lock()
	if gen != s.generation {
		// Reset happened while the call was in flight; discard the result.
		s.mu.Unlock()
		return "", ErrSuperseded
	}
	defer s.mu.Unlock()

	s.state = StateActive
	if err != nil {
		s.lastErr = err.Error()
		assistantTurn := domain.ConversationTurn{Role: domain.RoleAssistant, Text: FallbackReply}
		s.turns = append(s.turns, assistantTurn)
		s.record(ctx, assistantTurn)
		return FallbackReply, nil
	}

	s.lastErr = ""
	assistantTurn := domain.ConversationTurn{Role: domain.RoleAssistant, Text: reply}
	s.turns = append(s.turns, assistantTurn)
	s.record(ctx, assistantTurn)
	return reply, nil
}

// Reset discards the visible log and returns the session to Empty. An
// in-flight completion is not aborted; its late result is discarded by the
// generation check in Submit.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.turns = nil
	s.greetingSynthesized = false
	s.state = StateEmpty
	s.lastErr = ""
}

// Turns returns a copy of the visible log, greeting included.
func (s *Session) Turns() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the raw error text of the most recent failed
// completion, or "" after a success. It is for UI display only and never
// appears in the conversation log.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// outboundHistoryLocked returns the turns to send upstream: everything in
// insertion order except the synthesized greeting.
func (s *Session) outboundHistoryLocked() []domain.ConversationTurn {
	turns := s.turns
	if s.greetingSynthesized && len(turns) > 0 {
		turns = turns[1:]
	}
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}

func (s *Session) record(ctx context.Context, turn domain.ConversationTurn) {
	if s.recorder == nil {
		return
	}
	// Best-effort: local and persisted logs may diverge on failure.
	_ = s.recorder.Record(ctx, turn)
}
