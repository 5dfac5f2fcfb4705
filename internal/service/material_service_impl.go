package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/storage"
)

type materialService struct {
	materials repository.MaterialRepo
	files     storage.Store
}

func NewMaterialService(materials repository.MaterialRepo, files storage.Store) MaterialService {
	return &materialService{materials: materials, files: files}
}

func materialFolder(personaID string) string {
	return path.Join("materials", personaID)
}

func (s *materialService) AddLink(ctx context.Context, personaID, title, rawURL string) (*domain.TrainingMaterial, error) {
	if err := domain.ValidateLinkURL(rawURL); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = rawURL
	}
	m := &domain.TrainingMaterial{
		ID:        uuid.New().String(),
		PersonaID: personaID,
		Type:      domain.MaterialLink,
		Title:     title,
		URL:       rawURL,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddFile validates and copies a local file into storage, then records it.
// The stored copy is removed again if the record cannot be written.
func (s *materialService) AddFile(ctx context.Context, personaID, filePath string) (*domain.TrainingMaterial, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	name := filepath.Base(filePath)

	mtype, err := storage.ClassifyMaterial(name, info.Size())
	if err != nil {
		return nil, err
	}

	src, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer src.Close()

	id := uuid.New().String()
	relPath := path.Join(materialFolder(personaID), id+strings.ToLower(filepath.Ext(name)))
	size, err := s.files.Save(relPath, src)
	if err != nil {
		return nil, err
	}

	m := &domain.TrainingMaterial{
		ID:        id,
		PersonaID: personaID,
		Type:      mtype,
		Title:     name,
		Path:      relPath,
		SizeBytes: size,
		MimeType:  storage.MimeTypeFor(name),
	}
	if err := s.materials.Create(ctx, m); err != nil {
		_ = s.files.Delete(relPath)
		return nil, err
	}
	return m, nil
}

func (s *materialService) List(ctx context.Context, personaID string) ([]*domain.TrainingMaterial, error) {
	return s.materials.ListByPersona(ctx, personaID)
}

// Remove deletes the record first, then the stored file. A file removal
// failure leaves an orphan on disk but never resurrects the record.
func (s *materialService) Remove(ctx context.Context, id string) error {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}
	if m.Path != "" {
		_ = s.files.Delete(m.Path)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
