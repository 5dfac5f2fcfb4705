package cli

import (
	"testing"

	"github.com/mkovalenko/avatara/internal/auth"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/service"
	"github.com/mkovalenko/avatara/internal/storage"
	"github.com/mkovalenko/avatara/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	files, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	coachRepo := repository.NewSQLiteCoachRepo(database)
	personaRepo := repository.NewSQLitePersonaRepo(database)
	materialRepo := repository.NewSQLiteMaterialRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)

	return &App{
		Personas:  service.NewPersonaService(personaRepo, materialRepo, messageRepo, files),
		Materials: service.NewMaterialService(materialRepo, files),
		History:   service.NewHistoryService(messageRepo),
		Auth:      auth.NewFileProvider(t.TempDir(), coachRepo),
		Files:     files,
	}
}

func TestNewRootCmd_RegistersCommands(t *testing.T) {
	root := NewRootCmd(newTestApp(t))

	want := []string{"login", "logout", "whoami", "wizard", "chat", "status", "persona", "material"}
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "command %q should be registered", name)
	}
}

func TestChatRequiresAPIKey(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)
	root.SilenceUsage = true
	root.SetArgs([]string{"chat"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestStatusRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	root := NewRootCmd(app)
	root.SilenceUsage = true
	root.SetArgs([]string{"status"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  ,  ,"))
	assert.Equal(t, []string{"Career", "Leadership"}, splitList("Career, Leadership"))
	assert.Equal(t, []string{"One"}, splitList("  One  "))
}

func TestParseTone(t *testing.T) {
	assert.Equal(t, 50, parseTone("", 50))
	assert.Equal(t, 80, parseTone("80", 50))
	assert.Equal(t, 50, parseTone("abc", 50))
}

func TestValidateTone(t *testing.T) {
	assert.NoError(t, validateTone(""))
	assert.NoError(t, validateTone("0"))
	assert.NoError(t, validateTone("100"))
	assert.Error(t, validateTone("101"))
	assert.Error(t, validateTone("-1"))
	assert.Error(t, validateTone("abc"))
}
