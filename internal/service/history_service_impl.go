package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/chat"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
)

type historyService struct {
	messages repository.MessageRepo
}

func NewHistoryService(messages repository.MessageRepo) HistoryService {
	return &historyService{messages: messages}
}

func (s *historyService) List(ctx context.Context, personaID string) ([]domain.ConversationTurn, error) {
	return s.messages.ListByPersona(ctx, personaID)
}

func (s *historyService) Clear(ctx context.Context, personaID string) error {
	return s.messages.DeleteByPersona(ctx, personaID)
}

// RecorderFor binds the store to one persona so sessions can hand over
// turns without knowing where they go.
func (s *historyService) RecorderFor(personaID string) chat.Recorder {
	return &personaRecorder{messages: s.messages, personaID: personaID}
}

type personaRecorder struct {
	messages  repository.MessageRepo
	personaID string
}

func (r *personaRecorder) Record(ctx context.Context, turn domain.ConversationTurn) error {
	turn.ID = uuid.New().String()
	turn.PersonaID = r.personaID
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	return r.messages.Create(ctx, &turn)
}
