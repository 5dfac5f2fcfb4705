package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
)

// PersonaOption mutates a fixture persona before insertion.
type PersonaOption func(*domain.Persona)

func WithName(name string) PersonaOption {
	return func(p *domain.Persona) { p.Name = name }
}

func WithHeadline(headline string) PersonaOption {
	return func(p *domain.Persona) { p.Headline = headline }
}

func WithTones(warmth, formality, playfulness, empathy int) PersonaOption {
	return func(p *domain.Persona) { p.SetTones(warmth, formality, playfulness, empathy) }
}

func WithPublished() PersonaOption {
	return func(p *domain.Persona) { p.IsPublished = true }
}

// CreateCoach inserts a coach and returns it.
func CreateCoach(t *testing.T, database *sql.DB, email string) *domain.Coach {
	t.Helper()
	coach := &domain.Coach{ID: uuid.New().String(), Email: email}
	repo := repository.NewSQLiteCoachRepo(database)
	if err := repo.Upsert(context.Background(), coach); err != nil {
		t.Fatalf("creating fixture coach: %v", err)
	}
	return coach
}

// CreatePersona inserts a default persona for the coach, applying options.
func CreatePersona(t *testing.T, database *sql.DB, coachID string, opts ...PersonaOption) *domain.Persona {
	t.Helper()
	p := domain.NewPersona(coachID)
	p.ID = uuid.New().String()
	for _, opt := range opts {
		opt(p)
	}
	repo := repository.NewSQLitePersonaRepo(database)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("creating fixture persona: %v", err)
	}
	return p
}

// CreateMaterial inserts a link material for the persona.
func CreateMaterial(t *testing.T, database *sql.DB, personaID, title, url string) *domain.TrainingMaterial {
	t.Helper()
	m := &domain.TrainingMaterial{
		ID:        uuid.New().String(),
		PersonaID: personaID,
		Type:      domain.MaterialLink,
		Title:     title,
		URL:       url,
	}
	repo := repository.NewSQLiteMaterialRepo(database)
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("creating fixture material: %v", err)
	}
	return m
}
