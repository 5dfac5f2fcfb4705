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

func TestMessageRepo_CreateAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMessageRepo(database)

	base := time.Now().UTC().Add(-time.Minute)
	for i, text := range []string{"hello", "hi there", "how are you"} {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		turn := &domain.ConversationTurn{
			ID:        uuid.New().String(),
			PersonaID: p.ID,
			Role:      role,
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(context.Background(), turn))
	}

	got, err := repo.ListByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "hello", got[0].Text)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, "hi there", got[1].Text)
	assert.Equal(t, domain.RoleAssistant, got[1].Role)
	assert.Equal(t, "how are you", got[2].Text)
}

func TestMessageRepo_ListOrderedByInsertionWithinSameSecond(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMessageRepo(database)

	now := time.Now().UTC()
	for _, text := range []string{"first", "second", "third"} {
		turn := &domain.ConversationTurn{
			ID:        uuid.New().String(),
			PersonaID: p.ID,
			Role:      domain.RoleUser,
			Text:      text,
			CreatedAt: now,
		}
		require.NoError(t, repo.Create(context.Background(), turn))
	}

	got, err := repo.ListByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, "third", got[2].Text)
}

func TestMessageRepo_ListEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteMessageRepo(database)

	got, err := repo.ListByPersona(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMessageRepo_DeleteByPersona(t *testing.T) {
	database := testutil.NewTestDB(t)
	coach := testutil.CreateCoach(t, database, "ana@example.com")
	p := testutil.CreatePersona(t, database, coach.ID)
	other := testutil.CreatePersona(t, database, coach.ID)
	repo := repository.NewSQLiteMessageRepo(database)

	for _, pid := range []string{p.ID, p.ID, other.ID} {
		turn := &domain.ConversationTurn{
			ID:        uuid.New().String(),
			PersonaID: pid,
			Role:      domain.RoleUser,
			Text:      "msg",
		}
		require.NoError(t, repo.Create(context.Background(), turn))
	}

	require.NoError(t, repo.DeleteByPersona(context.Background(), p.ID))

	got, err := repo.ListByPersona(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	kept, err := repo.ListByPersona(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
