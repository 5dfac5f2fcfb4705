package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/storage"
	"github.com/mkovalenko/avatara/internal/wizard"
)

type personaService struct {
	personas  repository.PersonaRepo
	materials repository.MaterialRepo
	messages  repository.MessageRepo
	files     storage.Store
}

func NewPersonaService(
	personas repository.PersonaRepo,
	materials repository.MaterialRepo,
	messages repository.MessageRepo,
	files storage.Store,
) PersonaService {
	return &personaService{
		personas:  personas,
		materials: materials,
		messages:  messages,
		files:     files,
	}
}

// LoadOrCreate returns the coach's most recent persona, creating one with
// seeded defaults on first use.
func (s *personaService) LoadOrCreate(ctx context.Context, coachID string) (*domain.Persona, error) {
	p, err := s.personas.GetLatestByCoach(ctx, coachID)
	if err == nil {
		return p, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	p = domain.NewPersona(coachID)
	p.ID = uuid.New().String()
	if err := s.personas.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personaService) GetByID(ctx context.Context, id string) (*domain.Persona, error) {
	return s.personas.GetByID(ctx, id)
}

// Update applies the patch and recomputes the stored completion percentage.
func (s *personaService) Update(ctx context.Context, id string, patch *domain.PersonaPatch) (*domain.Persona, error) {
	p, err := s.personas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	count, err := s.materials.CountByPersona(ctx, id)
	if err != nil {
		return nil, err
	}
	p.CompletionPct = wizard.Evaluate(p, count).Overall

	if err := s.personas.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personaService) Publish(ctx context.Context, id string) (*domain.Persona, error) {
	return s.setPublished(ctx, id, true)
}

func (s *personaService) Unpublish(ctx context.Context, id string) (*domain.Persona, error) {
	return s.setPublished(ctx, id, false)
}

func (s *personaService) setPublished(ctx context.Context, id string, published bool) (*domain.Persona, error) {
	p, err := s.personas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsPublished = published

	count, err := s.materials.CountByPersona(ctx, id)
	if err != nil {
		return nil, err
	}
	p.CompletionPct = wizard.Evaluate(p, count).Overall

	if err := s.personas.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personaService) Progress(ctx context.Context, id string) (wizard.Progress, error) {
	p, err := s.personas.GetByID(ctx, id)
	if err != nil {
		return wizard.Progress{}, err
	}
	count, err := s.materials.CountByPersona(ctx, id)
	if err != nil {
		return wizard.Progress{}, err
	}
	return wizard.Evaluate(p, count), nil
}

// Delete removes a persona and everything hanging off it, in order:
// chat messages, material records, the persona row, then stored files.
// Each stage runs regardless of earlier failures.
func (s *personaService) Delete(ctx context.Context, id string) (*CleanupReport, error) {
	if _, err := s.personas.GetByID(ctx, id); err != nil {
		return nil, err
	}

	report := &CleanupReport{}

	if err := s.messages.DeleteByPersona(ctx, id); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("clearing messages: %v", err))
	} else {
		report.MessagesCleared = true
	}

	if err := s.materials.DeleteByPersona(ctx, id); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("clearing materials: %v", err))
	} else {
		report.MaterialsCleared = true
	}

	if err := s.personas.Delete(ctx, id); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("removing persona: %v", err))
	} else {
		report.PersonaRemoved = true
	}

	if err := s.files.DeletePrefix(materialFolder(id)); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("removing files: %v", err))
	} else {
		report.FilesRemoved = true
	}

	return report, nil
}
