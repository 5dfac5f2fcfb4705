package service_test

import (
	"context"
	"testing"

	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_RecordAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, err := e.personas.LoadOrCreate(ctx, e.coachID)
	require.NoError(t, err)

	recorder := e.history.RecorderFor(p.ID)
	require.NoError(t, recorder.Record(ctx, domain.ConversationTurn{Role: domain.RoleUser, Text: "hello"}))
	require.NoError(t, recorder.Record(ctx, domain.ConversationTurn{Role: domain.RoleAssistant, Text: "hi there"}))

	turns, err := e.history.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Text)
	assert.NotEmpty(t, turns[0].ID)
	assert.Equal(t, p.ID, turns[0].PersonaID)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
}

func TestHistoryService_Clear(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	p, err := e.personas.LoadOrCreate(ctx, e.coachID)
	require.NoError(t, err)

	recorder := e.history.RecorderFor(p.ID)
	require.NoError(t, recorder.Record(ctx, domain.ConversationTurn{Role: domain.RoleUser, Text: "hello"}))

	require.NoError(t, e.history.Clear(ctx, p.ID))

	turns, err := e.history.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}
