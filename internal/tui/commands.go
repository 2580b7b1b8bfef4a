package tui

import (
	"context"
	"time"

	"clinroots-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	requestTimeout = 10 * time.Second
	flashInterval  = 800 * time.Millisecond
	maxSuggestions = 6
	minSearchLen   = 2
)

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func fetchCategoriesCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		cats, err := c.Categories(ctx)
		return categoriesMsg{cats: cats, err: err}
	}
}

func fetchNotesCmd(c *api.Client, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		notes, err := c.Notes(ctx, category)
		return notesMsg{category: category, notes: notes, err: err}
	}
}

func fetchNoteCmd(c *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		n, err := c.Note(ctx, id)
		return noteMsg{id: id, note: n, err: err}
	}
}

func loginCmd(c *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		res, err := c.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		// The login flow is the sole writer of a fresh session.
		if err := c.Session.Commit(res.User, res.Token); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{user: res.User}
	}
}

func logoutCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		_ = c.Logout(ctx) // stateless tokens: best effort
		_ = c.Session.Clear()
		return logoutDoneMsg{}
	}
}

func saveNoteCmd(c *api.Client, id int, field editField, seq int, p api.UpdatePayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := c.UpdateNote(ctx, id, p)
		return saveDoneMsg{noteID: id, field: field, seq: seq, err: err}
	}
}

// crudPrefillCmd gathers what the CRUD modal needs before it opens: the
// category keys for the picker, plus the note itself in edit mode.
func crudPrefillCmd(c *api.Client, noteID *int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		keys, err := c.CategoryKeys(ctx)
		if err != nil {
			return crudPrefillMsg{noteID: noteID, err: err}
		}
		if noteID == nil {
			return crudPrefillMsg{keys: keys}
		}
		n, err := c.Note(ctx, *noteID)
		if err != nil {
			return crudPrefillMsg{noteID: noteID, err: err}
		}
		return crudPrefillMsg{noteID: noteID, note: n, keys: keys}
	}
}

func crudSubmitCmd(c *api.Client, noteID *int, p api.NotePayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		if noteID == nil {
			return crudSavedMsg{created: true, err: c.CreateNote(ctx, p)}
		}
		up := api.UpdatePayload{Title: p.Title, Category: p.Category, Content: p.Content, IsPublished: true}
		return crudSavedMsg{err: c.UpdateNote(ctx, *noteID, up)}
	}
}

func deleteNoteCmd(c *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		return deleteDoneMsg{err: c.DeleteNote(ctx, id)}
	}
}

func fetchStatsCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		stats, err := c.AdminStats(ctx)
		if err != nil {
			return statsMsg{err: err}
		}
		top, err := c.TopNotes(ctx)
		return statsMsg{stats: stats, top: top, err: err}
	}
}

func searchCmd(c *api.Client, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		notes, err := c.SearchNotes(ctx, query)
		if err != nil {
			return searchResultMsg{seq: seq, err: err}
		}
		if len(notes) > maxSuggestions {
			notes = notes[:maxSuggestions]
		}
		return searchResultMsg{seq: seq, notes: notes}
	}
}

func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashInterval, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
