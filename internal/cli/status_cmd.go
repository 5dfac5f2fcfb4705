package cli

import (
	"fmt"

	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show avatar setup progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			prog, err := app.Personas.Progress(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProgress(prog))
			return nil
		},
	}
}
