package cli

import (
	"errors"
	"fmt"

	"github.com/mkovalenko/avatara/internal/auth"
	"github.com/mkovalenko/avatara/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in as a coach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coach, err := app.Auth.Login(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s %s\n", formatter.Bold(coach.Email), formatter.TruncID(coach.ID))
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(); err != nil {
				if errors.Is(err, auth.ErrNotSignedIn) {
					fmt.Println(formatter.Dim("Not signed in."))
					return nil
				}
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in coach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coach, err := app.Auth.Current(cmd.Context())
			if err != nil {
				if errors.Is(err, auth.ErrNotSignedIn) {
					fmt.Println(formatter.Dim("Not signed in."))
					return nil
				}
				return err
			}
			fmt.Printf("%s %s\n", formatter.Bold(coach.Email), formatter.TruncID(coach.ID))
			return nil
		},
	}
}
