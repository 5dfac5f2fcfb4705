package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonaRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	repo := repository.NewSQLitePersonaRepo(database)

	p := domain.NewPersona(coach.ID)
	p.ID = uuid.New().String()
	p.Name = "Coach Ana"
	p.Headline = "Leadership coach"
	p.Certification = domain.CertCertified
	p.Affiliations = []string{"ICF"}
	p.SetTones(80, 30, 50, 90)
	p.CommunicationStyle = "Direct but kind."

	require.NoError(t, repo.Create(context.Background(), p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coach Ana", got.Name)
	assert.Equal(t, domain.CertCertified, got.Certification)
	assert.Equal(t, []string{"ICF"}, got.Affiliations)
	assert.Equal(t, 80, got.ToneWarmth)
	assert.Equal(t, 30, got.ToneFormality)
	assert.Equal(t, domain.DefaultAllowedTopics, got.AllowedTopics)
	assert.Equal(t, domain.DefaultBlockedTopics, got.BlockedTopics)
	assert.False(t, got.IsPublished)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestPersonaRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePersonaRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersonaRepo_GetLatestByCoach(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	repo := repository.NewSQLitePersonaRepo(database)

	older := domain.NewPersona(coach.ID)
	older.ID = uuid.New().String()
	older.Name = "First"
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(context.Background(), older))

	newer := domain.NewPersona(coach.ID)
	newer.ID = uuid.New().String()
	newer.Name = "Second"
	require.NoError(t, repo.Create(context.Background(), newer))

	got, err := repo.GetLatestByCoach(context.Background(), coach.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
}

func TestPersonaRepo_GetLatestByCoach_None(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	repo := repository.NewSQLitePersonaRepo(database)

	_, err := repo.GetLatestByCoach(context.Background(), coach.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersonaRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID, testutil.WithName("Before"))
	repo := repository.NewSQLitePersonaRepo(database)

	p.Name = "After"
	p.BlockedTopics = []string{"Legal issues"}
	p.IsPublished = true
	p.CompletionPct = 72
	require.NoError(t, repo.Update(context.Background(), p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, []string{"Legal issues"}, got.BlockedTopics)
	assert.True(t, got.IsPublished)
	assert.Equal(t, 72, got.CompletionPct)
}

func TestPersonaRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePersonaRepo(database)

	p := domain.NewPersona("coach-1")
	p.ID = "missing"
	assert.ErrorIs(t, repo.Update(context.Background(), p), repository.ErrNotFound)
}

func TestPersonaRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLitePersonaRepo(database)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), p.ID), repository.ErrNotFound)
}

func TestPersonaRepo_EmptySlicesRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	repo := repository.NewSQLitePersonaRepo(database)

	p := domain.NewPersona(coach.ID)
	p.ID = uuid.New().String()
	p.AllowedTopics = nil
	p.BlockedTopics = nil
	p.Affiliations = nil
	require.NoError(t, repo.Create(context.Background(), p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AllowedTopics)
	assert.Nil(t, got.BlockedTopics)
	assert.Nil(t, got.Affiliations)
}
