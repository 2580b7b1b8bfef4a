package cli

import (
	"fmt"
	"os"
	"strings"

	"clinroots-cli/internal/api"
	"clinroots-cli/internal/format"
	"clinroots-cli/internal/logger"
	"clinroots-cli/internal/session"
	"clinroots-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Server     string
	Dir        string
	PrettyJSON bool
	Format     string
	Verbose    bool

	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "clinroots",
		Short:        "ClinicalRoots notes client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  clinroots

  # Scriptable commands
  clinroots login --email a@x.com --password secret
  clinroots categories list
  clinroots notes list --category anatomy
  clinroots notes show 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(app.Verbose)
		if err != nil {
			return err
		}
		app.log = log
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("CLINROOTS_SERVER", "http://localhost:5000"), "Backend base URL")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CLINROOTS_DIR", ""), "Path to state dir (advanced: overrides ~/.clinroots; use for fixtures/tests)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CLINROOTS_FORMAT", "json"), "Output format (json)")
	cmd.PersistentFlags().BoolVar(&app.Verbose, "verbose", false, "Log requests to stderr")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newChangePasswordCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) sessionStore() session.Store {
	return session.Store{Dir: app.Dir}
}

func (app *App) client() *api.Client {
	return api.New(app.Server, app.sessionStore(), app.log)
}

func runTUI(app *App) error {
	// The TUI owns the terminal; route nothing through stderr logging.
	c := api.New(app.Server, app.sessionStore(), logger.Nop())
	return tui.Run(c)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), friendly(err).Error())
	return err
}
