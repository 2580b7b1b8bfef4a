package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard aggregates and top-viewed notes (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.client()
			stats, err := c.AdminStats(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			top, err := c.TopNotes(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"stats":     stats,
				"top_notes": top,
			}})
		},
	}
	return cmd
}
