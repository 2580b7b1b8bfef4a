package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// globalKey handles shortcuts shared by every view. Returns handled=false
// when the key should fall through to the view's own handler.
func (m *appModel) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "l":
		if !m.loggedIn {
			m.openLoginModal()
			return nil, true
		}
	case "o":
		if m.loggedIn {
			return logoutCmd(m.client), true
		}
	case "a":
		if m.loggedIn && m.user.IsAdmin() {
			m.view = viewAdmin
			m.statsLoaded = false
			return fetchStatsCmd(m.client), true
		}
	}
	return nil, false
}

func (m *appModel) enterLibrary() tea.Cmd {
	m.view = viewLibrary
	m.suggestions = nil
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	// Always fetched fresh; one navigation is the acceptable staleness window.
	return fetchCategoriesCmd(m.client)
}

func (m *appModel) enterCategory(key, name string) tea.Cmd {
	m.view = viewCategory
	m.categoryKey = key
	m.categoryName = name
	m.notesLoaded = false
	m.notesEmpty = false
	return fetchNotesCmd(m.client, key)
}

func (m *appModel) openNote(id int) tea.Cmd {
	// Full content is always re-fetched; summary data is never promoted.
	m.view = viewNote
	m.noteLoaded = false
	m.pendingNoteID = id
	m.noteFocus = focusNone
	return fetchNoteCmd(m.client, id)
}

func (m appModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.globalKey(msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "b", "enter":
		return m, m.enterLibrary()
	}
	return m, nil
}

func (m appModel) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		return m.updateLibrarySearch(msg)
	}
	if cmd, handled := m.globalKey(msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewHome
		return m, nil
	case "/":
		m.searchInput.Focus()
		return m, nil
	case "n":
		if m.loggedIn && m.user.IsAdmin() {
			return m, m.openCrudModal(nil)
		}
		return m, nil
	case "enter":
		if it, ok := m.categoriesList.SelectedItem().(categoryItem); ok {
			return m, m.enterCategory(it.cat.Key, it.cat.Name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.categoriesList, cmd = m.categoriesList.Update(msg)
	return m, cmd
}

func (m appModel) updateLibrarySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.suggestions = nil
		return m, nil
	case "enter":
		if len(m.suggestions) > 0 {
			n := m.suggestions[m.suggestionIdx]
			m.searchInput.Blur()
			m.suggestions = nil
			return m, m.openNote(n.ID)
		}
		return m, nil
	case "up", "ctrl+p":
		if m.suggestionIdx > 0 {
			m.suggestionIdx--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.suggestionIdx < len(m.suggestions)-1 {
			m.suggestionIdx++
		}
		return m, nil
	}

	before := strings.TrimSpace(m.searchInput.Value())
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := strings.TrimSpace(m.searchInput.Value())
	if after == before {
		return m, cmd
	}
	// Below the threshold we suppress the round-trip entirely and clear
	// stale suggestions.
	if len([]rune(after)) < minSearchLen {
		m.suggestions = nil
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, searchCmd(m.client, m.searchSeq, after))
}

func (m appModel) updateCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.globalKey(msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "esc", "backspace":
		return m, m.enterLibrary()
	case "n":
		if m.loggedIn && m.user.IsAdmin() {
			return m, m.openCrudModal(nil)
		}
		return m, nil
	case "enter":
		if it, ok := m.notesList.SelectedItem().(noteItem); ok {
			return m, m.openNote(it.note.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.notesList, cmd = m.notesList.Update(msg)
	return m, cmd
}

func (m appModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.noteFocus != focusNone {
		return m.updateNoteEditing(msg)
	}
	if cmd, handled := m.globalKey(msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "esc", "backspace":
		m.noteLoaded = false
		if m.categoryKey == "" {
			// Opened via search from the library root.
			return m, m.enterLibrary()
		}
		return m, m.enterCategory(m.categoryKey, m.categoryName)
	case "tab":
		// Entering edit mode is gated by the registry, not by re-checking
		// roles at the keypress site.
		if m.noteLoaded && m.editor.state(m.note.ID) != editReadOnly {
			m.noteFocus = focusTitle
			return m, m.titleInput.Focus()
		}
		return m, nil
	case "e":
		if m.noteLoaded && m.loggedIn && m.user.IsAdmin() {
			id := m.note.ID
			return m, m.openCrudModal(&id)
		}
		return m, nil
	case "d":
		if m.noteLoaded && m.loggedIn && m.user.IsAdmin() {
			m.modal = modalConfirmDelete
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}
	return m, nil
}

// updateNoteEditing routes keys into the focused designated region. Moving
// focus off a region is the save trigger.
func (m appModel) updateNoteEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		switch m.noteFocus {
		case focusTitle:
			save := m.leaveField(fieldTitle)
			m.noteFocus = focusContent
			return m, tea.Batch(save, m.contentArea.Focus())
		case focusContent:
			save := m.leaveField(fieldContent)
			m.noteFocus = focusNone
			return m, save
		}
		return m, nil
	case "esc":
		var save tea.Cmd
		if m.noteFocus == focusTitle {
			save = m.leaveField(fieldTitle)
		} else {
			save = m.leaveField(fieldContent)
		}
		m.noteFocus = focusNone
		return m, save
	}

	var cmd tea.Cmd
	switch m.noteFocus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusContent:
		m.contentArea, cmd = m.contentArea.Update(msg)
	}
	return m, cmd
}

// leaveField blurs a designated region and, when the content actually
// changed, packages the card's current regions into an update and sends it.
// A failed save leaves the regions exactly as the user left them, so a
// retry operates on the latest edit. If a save is already in flight the
// edit is not lost: onSaveDone chains a follow-up save when the settled
// payload no longer matches the fields.
func (m *appModel) leaveField(f editField) tea.Cmd {
	if f == fieldTitle {
		m.titleInput.Blur()
	} else {
		m.contentArea.Blur()
	}
	if !m.noteLoaded || !m.dirty() {
		return nil
	}
	if !m.editor.beginSave(m.note.ID) {
		return nil
	}
	m.saveSeqs[m.note.ID]++
	m.inFlight = m.currentPayload()
	return saveNoteCmd(m.client, m.note.ID, f, m.saveSeqs[m.note.ID], m.inFlight)
}

func (m appModel) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.globalKey(msg); handled {
		return m, cmd
	}
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewHome
		return m, nil
	case "r":
		m.statsLoaded = false
		return m, fetchStatsCmd(m.client)
	}
	return m, nil
}
