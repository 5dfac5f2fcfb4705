package service

import (
	"context"

	"github.com/mkovalenko/avatara/internal/chat"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/wizard"
)

type PersonaService interface {
	LoadOrCreate(ctx context.Context, coachID string) (*domain.Persona, error)
	GetByID(ctx context.Context, id string) (*domain.Persona, error)
	Update(ctx context.Context, id string, patch *domain.PersonaPatch) (*domain.Persona, error)
	Publish(ctx context.Context, id string) (*domain.Persona, error)
	Unpublish(ctx context.Context, id string) (*domain.Persona, error)
	Progress(ctx context.Context, id string) (wizard.Progress, error)
	Delete(ctx context.Context, id string) (*CleanupReport, error)
}

type MaterialService interface {
	AddLink(ctx context.Context, personaID, title, rawURL string) (*domain.TrainingMaterial, error)
	AddFile(ctx context.Context, personaID, filePath string) (*domain.TrainingMaterial, error)
	List(ctx context.Context, personaID string) ([]*domain.TrainingMaterial, error)
	Remove(ctx context.Context, id string) error
}

type HistoryService interface {
	List(ctx context.Context, personaID string) ([]domain.ConversationTurn, error)
	Clear(ctx context.Context, personaID string) error
	RecorderFor(personaID string) chat.Recorder
}

// CleanupReport records the outcome of each stage of a persona deletion.
// Deletion is best-effort: a failed stage is noted and the cascade
// continues, so a partially-deleted persona is possible.
type CleanupReport struct {
	MessagesCleared  bool
	MaterialsCleared bool
	PersonaRemoved   bool
	FilesRemoved     bool
	Errors           []string
}

// Clean reports whether every stage succeeded.
func (r *CleanupReport) Clean() bool {
	return len(r.Errors) == 0
}
