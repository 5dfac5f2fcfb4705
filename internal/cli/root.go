package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkovalenko/avatara/internal/auth"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/llm"
	"github.com/mkovalenko/avatara/internal/service"
	"github.com/mkovalenko/avatara/internal/storage"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Personas  service.PersonaService
	Materials service.MaterialService
	History   service.HistoryService
	Auth      *auth.FileProvider
	Files     storage.Store

	// LLM is nil when no API key is configured; the chat command
	// refuses to start in that case.
	LLM llm.Client

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "avatara" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "avatara",
		Short: "Build and talk to your AI coaching avatar",
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newWizardCmd(app),
		newChatCmd(app),
		newStatusCmd(app),
		newPersonaCmd(app),
		newMaterialCmd(app),
	)

	return root
}

// currentPersona resolves the signed-in coach and their persona, creating
// the persona on first use.
func currentPersona(ctx context.Context, app *App) (*domain.Persona, error) {
	coach, err := app.Auth.Current(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			return nil, fmt.Errorf("not signed in (run `avatara login <email>` first)")
		}
		return nil, err
	}
	return app.Personas.LoadOrCreate(ctx, coach.ID)
}
