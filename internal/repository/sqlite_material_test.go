package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMaterialRepo(database)

	m := &domain.TrainingMaterial{
		ID:        uuid.New().String(),
		PersonaID: p.ID,
		Type:      domain.MaterialDocument,
		Title:     "workbook.pdf",
		Path:      "materials/" + p.ID + "/workbook.pdf",
		SizeBytes: 1024,
		MimeType:  "application/pdf",
	}
	require.NoError(t, repo.Create(context.Background(), m))

	got, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaterialDocument, got.Type)
	assert.Equal(t, "workbook.pdf", got.Title)
	assert.Equal(t, int64(1024), got.SizeBytes)
	assert.Equal(t, "application/pdf", got.MimeType)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMaterialRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteMaterialRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMaterialRepo_ListAndCount(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	other := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMaterialRepo(database)

	testutil.CreateMaterial(t, database, p.ID, "Article one", "https://example.com/one")
	testutil.CreateMaterial(t, database, p.ID, "Article two", "https://example.com/two")
	testutil.CreateMaterial(t, database, other.ID, "Elsewhere", "https://example.com/three")

	list, err := repo.ListByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	count, err := repo.CountByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByPersona(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMaterialRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	m := testutil.CreateMaterial(t, database, p.ID, "Article", "https://example.com/a")
	repo := repository.NewSQLiteMaterialRepo(database)

	require.NoError(t, repo.Delete(context.Background(), m.ID))

	_, err := repo.GetByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), m.ID), repository.ErrNotFound)
}

func TestMaterialRepo_DeleteByPersona(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	keep := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMaterialRepo(database)

	testutil.CreateMaterial(t, database, p.ID, "One", "https://example.com/1")
	testutil.CreateMaterial(t, database, p.ID, "Two", "https://example.com/2")
	kept := testutil.CreateMaterial(t, database, keep.ID, "Keep", "https://example.com/k")

	require.NoError(t, repo.DeleteByPersona(context.Background(), p.ID))

	count, err := repo.CountByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.GetByID(context.Background(), kept.ID)
	assert.NoError(t, err)
}
