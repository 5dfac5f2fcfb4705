package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTurn rejects a turn whose text is empty after trimming. Empty
// submissions never reach the conversation log.
var ErrEmptyTurn = errors.New("turn text is empty")

// ConversationTurn is one message in a conversation, attributed to either
// the user or the assistant. Turns are append-only and totally ordered by
// insertion; there is no editing after append.
type ConversationTurn struct {
	ID        string
	PersonaID string
	Role      TurnRole
	Text      string
	CreatedAt time.Time
}

// NewTurn builds a turn, rejecting whitespace-only text.
func NewTurn(role TurnRole, text string) (ConversationTurn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ConversationTurn{}, ErrEmptyTurn
	}
	return ConversationTurn{Role: role, Text: trimmed}, nil
}
