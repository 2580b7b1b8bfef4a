package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return writeErr(cmd, errValidation("email", "must not be empty"))
			}
			res, err := app.client().Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := app.sessionStore().Commit(res.User, res.Token); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.User})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Notify the backend first (stateless tokens: best effort only),
			// then clear locally regardless.
			_ = app.client().Logout(cmd.Context())
			if err := app.sessionStore().Clear(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _, ok := app.sessionStore().Restore()
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": nil})
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}
	return cmd
}

func newChangePasswordCmd(app *App) *cobra.Command {
	var current, updated, confirm string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the current account's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if updated != confirm {
				return writeErr(cmd, errValidation("password", "new passwords do not match"))
			}
			if err := app.client().ChangePassword(cmd.Context(), current, updated, confirm); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "password changed"})
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&updated, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "New password, repeated")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("confirm")
	return cmd
}
