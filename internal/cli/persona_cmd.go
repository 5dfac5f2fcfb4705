package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/storage"
	"github.com/spf13/cobra"
)

func newPersonaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Inspect and manage your avatar",
	}
	cmd.AddCommand(
		newPersonaShowCmd(app),
		newPersonaSetPhotoCmd(app),
		newPersonaPublishCmd(app),
		newPersonaUnpublishCmd(app),
		newPersonaDeleteCmd(app),
	)
	return cmd
}

func newPersonaSetPhotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-photo <path>",
		Short: "Set the avatar profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}
			name := filepath.Base(args[0])
			if err := storage.ValidatePhoto(name, info.Size()); err != nil {
				return err
			}

			src, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening photo: %w", err)
			}
			defer src.Close()

			relPath := path.Join("photos", p.ID+strings.ToLower(filepath.Ext(name)))
			if _, err := app.Files.Save(relPath, src); err != nil {
				return err
			}

			if _, err := app.Personas.Update(cmd.Context(), p.ID, &domain.PersonaPatch{
				PhotoURL: domain.StrPtr(relPath),
			}); err != nil {
				return err
			}
			fmt.Println("Photo updated.")
			return nil
		},
	}
}

func newPersonaShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the avatar profile",
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
			fmt.Println(formatter.FormatPersonaShow(p, len(materials)))
			return nil
		},
	}
}

func newPersonaPublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Make the avatar available to clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			p, err = app.Personas.Publish(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", formatter.Bold(p.DisplayName()), formatter.PublishPill(true))
			return nil
		},
	}
}

func newPersonaUnpublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish",
		Short: "Take the avatar offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}
			p, err = app.Personas.Unpublish(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", formatter.Bold(p.DisplayName()), formatter.PublishPill(false))
			return nil
		},
	}
}

func newPersonaDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the avatar and everything attached to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := currentPersona(cmd.Context(), app)
			if err != nil {
				return err
			}

			if !force {
				confirmed := false
				form := wizardConfirm(
					fmt.Sprintf("Delete %s? Chat history, materials, and files will be removed.", p.DisplayName()),
					&confirmed,
				)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Cancelled."))
					return nil
				}
			}

			stopSpinner := formatter.StartSpinner("Deleting avatar...")
			report, err := app.Personas.Delete(cmd.Context(), p.ID)
			stopSpinner()
			if err != nil {
				return err
			}

			if report.Clean() {
				fmt.Println("Avatar deleted.")
				return nil
			}
			fmt.Println(formatter.StyleYellow.Render("Avatar deleted with warnings:"))
			for _, e := range report.Errors {
				fmt.Printf("  %s %s\n", formatter.StyleRed.Render("✖"), e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
