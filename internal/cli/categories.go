package cli

import (
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesKeysCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with note counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.client().Categories(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cats})
		},
	}
	return cmd
}

func newCategoriesKeysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List raw category keys (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := app.client().CategoryKeys(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": keys})
		},
	}
	return cmd
}
