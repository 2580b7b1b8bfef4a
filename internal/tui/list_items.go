package tui

import (
	"fmt"
	"strings"

	"clinroots-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type categoryItem struct {
	cat model.Category
}

func (i categoryItem) FilterValue() string { return i.cat.Name }
func (i categoryItem) Title() string {
	return fmt.Sprintf("%s  (%d notes)", i.cat.Name, i.cat.NoteCount)
}
func (i categoryItem) Description() string { return i.cat.Description }

type noteItem struct {
	note model.NoteSummary
}

func (i noteItem) FilterValue() string { return i.note.Title }
func (i noteItem) Title() string       { return i.note.Title }
func (i noteItem) Description() string {
	return fmt.Sprintf("Views: %d", i.note.Views)
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own global header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func (m *appModel) setCategories(cats []model.Category) {
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryItem{cat: c})
	}
	m.categoriesList.SetItems(items)
}

func (m *appModel) setNotes(notes []model.NoteSummary) {
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem{note: n})
	}
	m.notesList.SetItems(items)
	m.notesLoaded = true
	m.notesEmpty = len(notes) == 0
	m.syncEditCapability()
}

func categoryDisplayName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}
