package repository

import (
	"context"
	"errors"

	"github.com/mkovalenko/avatara/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type PersonaRepo interface {
	Create(ctx context.Context, p *domain.Persona) error
	GetByID(ctx context.Context, id string) (*domain.Persona, error)
	// GetLatestByCoach returns the most recently created persona for a
	// coach, or ErrNotFound when the coach has none yet.
	GetLatestByCoach(ctx context.Context, coachID string) (*domain.Persona, error)
	Update(ctx context.Context, p *domain.Persona) error
	Delete(ctx context.Context, id string) error
}

type MaterialRepo interface {
	Create(ctx context.Context, m *domain.TrainingMaterial) error
	GetByID(ctx context.Context, id string) (*domain.TrainingMaterial, error)
	ListByPersona(ctx context.Context, personaID string) ([]*domain.TrainingMaterial, error)
	CountByPersona(ctx context.Context, personaID string) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteByPersona(ctx context.Context, personaID string) error
}

type MessageRepo interface {
	Create(ctx context.Context, turn *domain.ConversationTurn) error
	ListByPersona(ctx context.Context, personaID string) ([]domain.ConversationTurn, error)
	DeleteByPersona(ctx context.Context, personaID string) error
}

type CoachRepo interface {
	Upsert(ctx context.Context, c *domain.Coach) error
	GetByID(ctx context.Context, id string) (*domain.Coach, error)
	GetByEmail(ctx context.Context, email string) (*domain.Coach, error)
}
