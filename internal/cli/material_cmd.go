package cli

import (
	"fmt"

	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMaterialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Manage training materials",
	}
	cmd.AddCommand(
		newMaterialAddLinkCmd(app),
		newMaterialAddFileCmd(app),
		newMaterialListCmd(app),
		newMaterialRemoveCmd(app),
	)
	return cmd
}

func newMaterialAddLinkCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add-link <url>",
		Short: "Add a web link as training material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			m, err := app.Materials.AddLink(cmd.Context(), p.ID, title, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added %s %s\n", formatter.Bold(m.Title), formatter.TruncID(m.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "display title (defaults to the URL)")
	return cmd
}

func newMaterialAddFileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-file <path>",
		Short: "Upload a document or video as training material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			stopSpinner := formatter.StartSpinner("Uploading...")
			m, err := app.Materials.AddFile(cmd.Context(), p.ID, args[0])
			stopSpinner()
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s, %s) %s\n",
				formatter.Bold(m.Title), m.Type, formatter.FormatBytes(m.SizeBytes), formatter.TruncID(m.ID))
			return nil
		},
	}
}

func newMaterialListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List training materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			materials, err := app.Materials.List(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatMaterials(materials))
			return nil
		},
	}
}

func newMaterialRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a training material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Materials.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
