package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkovalenko/avatara/internal/chat"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to your avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.LLM == nil {
				return fmt.Errorf("chat needs a Gemini API key (set AVATARA_GEMINI_API_KEY)")
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("chat requires an interactive terminal")
			}

			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}

			session := chat.NewSession(p, app.LLM, chat.WithRecorder(app.History.RecorderFor(p.ID)))
			history, err := app.History.List(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			session.LoadHistory(history)
			session.Greet()

			model := newChatView(app, p, session)
			program := tea.NewProgram(model)
			_, err = program.Run()
			return err
		},
	}
}
