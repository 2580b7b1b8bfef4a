package cli

import (
	"strconv"
	"strings"

	"clinroots-cli/internal/api"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesSearchCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesCreateCmd(app))
	cmd.AddCommand(newNotesUpdateCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	return cmd
}

func noteIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, errValidation("note id", "must be an integer")
	}
	return id, nil
}

func newNotesListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List note summaries in a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := app.client().Notes(cmd.Context(), category)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": notes})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category key")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newNotesSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search note titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.TrimSpace(args[0])
			if len([]rune(q)) < 2 {
				// Mirror the interactive surface: short queries never hit the
				// backend, they just produce an empty result.
				return writeOut(cmd, app, map[string]any{"data": []any{}})
			}
			notes, err := app.client().SearchNotes(cmd.Context(), q)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": notes})
		},
	}
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show full note detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := noteIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := app.client().Note(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": n})
		},
	}
	return cmd
}

func newNotesCreateCmd(app *App) *cobra.Command {
	var title, category, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errValidation("title", "must not be empty"))
			}
			p := api.NotePayload{Title: strings.TrimSpace(title), Category: category, Content: content}
			if err := app.client().CreateNote(cmd.Context(), p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "created"})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&category, "category", "", "Category key")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newNotesUpdateCmd(app *App) *cobra.Command {
	var title, category, content string

	cmd := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Update a note (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := noteIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errValidation("title", "must not be empty"))
			}
			p := api.UpdatePayload{
				Title:       strings.TrimSpace(title),
				Category:    category,
				Content:     content,
				IsPublished: true,
			}
			if err := app.client().UpdateNote(cmd.Context(), id, p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "updated"})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&category, "category", "", "Category key")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := noteIDArg(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errValidation("confirmation", "pass --yes to confirm deletion"))
			}
			if err := app.client().DeleteNote(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "deleted"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion without prompting")
	return cmd
}
