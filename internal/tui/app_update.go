package tui

import (
	"errors"

	"clinroots-cli/internal/api"
	"clinroots-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case categoriesMsg:
		return m.onCategories(msg)
	case notesMsg:
		return m.onNotes(msg)
	case noteMsg:
		return m.onNote(msg)
	case loginDoneMsg:
		return m.onLoginDone(msg)
	case logoutDoneMsg:
		return m.onLogoutDone()
	case saveDoneMsg:
		return m.onSaveDone(msg)
	case crudPrefillMsg:
		return m.onCrudPrefill(msg)
	case crudSavedMsg:
		return m.onCrudSaved(msg)
	case deleteDoneMsg:
		return m.onDeleteDone(msg)
	case statsMsg:
		return m.onStats(msg)
	case searchResultMsg:
		return m.onSearchResult(msg)
	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.hasFlash = false
			m.editor.flashDone(m.flashFor)
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

// expireSession is the single recovery path for credential rejection: wipe
// in-memory identity (the gateway already wiped the store), revoke edit
// capability, surface a one-time notice, and force the login view.
func (m *appModel) expireSession() {
	m.loggedIn = false
	m.user = model.User{}
	m.editor.revokeAll()
	m.notice = "Session expired. Please log in again."
	m.view = viewHome
	m.openLoginModal()
}

func unauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

func sameNoteRef(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m appModel) onCategories(msg categoriesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.errText = ""
	m.setCategories(msg.cats)
	return m, nil
}

func (m appModel) onNotes(msg notesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	// A response for a category we already left is simply not observed.
	if msg.category != m.categoryKey {
		return m, nil
	}
	m.errText = ""
	m.setNotes(msg.notes)
	return m, nil
}

func (m appModel) onNote(msg noteMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	if m.view != viewNote || msg.id != m.pendingNoteID {
		return m, nil
	}
	m.errText = ""
	m.loadNoteIntoEditor(msg.note)
	return m, nil
}

func (m appModel) onLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loginErr = msg.err.Error()
		return m, nil
	}
	m.user = msg.user
	m.loggedIn = true
	m.loginErr = ""
	m.notice = ""
	m.closeModal()
	m.syncEditCapability()
	// Admins land on the dashboard, everyone else on home.
	if m.user.IsAdmin() {
		m.view = viewAdmin
		m.statsLoaded = false
		return m, fetchStatsCmd(m.client)
	}
	m.view = viewHome
	return m, nil
}

func (m appModel) onLogoutDone() (tea.Model, tea.Cmd) {
	m.loggedIn = false
	m.user = model.User{}
	m.editor.revokeAll()
	m.noteFocus = focusNone
	m.titleInput.Blur()
	m.contentArea.Blur()
	m.notice = "Logged out."
	m.view = viewHome
	return m, nil
}

func (m appModel) onSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	if unauthorized(msg.err) {
		// The gateway already cleared the store; the editor must not assume
		// it still has a usable session.
		m.expireSession()
		return m, nil
	}
	// A superseded response still settles the registry (otherwise the note
	// would stick in Saving and refuse every later save) but paints no
	// feedback: that belongs to the newest save only.
	if msg.seq != m.saveSeqs[msg.noteID] {
		m.editor.settle(msg.noteID, msg.err == nil)
		return m, nil
	}
	m.editor.settle(msg.noteID, msg.err == nil)
	if msg.err == nil {
		m.saveErrText = ""
		if msg.noteID == m.note.ID {
			m.lastSaved = m.inFlight
		}
	} else {
		m.saveErrText = msg.err.Error()
	}

	// A focus-loss during the flight left newer text in the fields than the
	// payload that just settled. Chain the follow-up save now; nothing else
	// would re-fire it and the edit would sit unsaved. Comparing against the
	// attempted payload (not lastSaved) keeps a failed save from retrying
	// itself in a loop.
	var next tea.Cmd
	if msg.noteID == m.note.ID && m.noteLoaded {
		if p := m.currentPayload(); p.Title != m.inFlight.Title || p.Content != m.inFlight.Content {
			if m.editor.beginSave(msg.noteID) {
				f := fieldContent
				if p.Title != m.inFlight.Title {
					f = fieldTitle
				}
				m.saveSeqs[msg.noteID]++
				m.inFlight = p
				next = saveNoteCmd(m.client, msg.noteID, f, m.saveSeqs[msg.noteID], m.inFlight)
			}
		}
	}

	// Transient tint on the saved region, auto-reverting.
	m.flashSeq++
	m.flashFor = msg.noteID
	m.flashField = msg.field
	m.hasFlash = true
	if msg.err == nil {
		m.flashKind = "ok"
	} else {
		m.flashKind = "err"
	}
	return m, tea.Batch(flashCmd(m.flashSeq), next)
}

func (m appModel) onCrudPrefill(msg crudPrefillMsg) (tea.Model, tea.Cmd) {
	if unauthorized(msg.err) {
		m.expireSession()
		return m, nil
	}
	// A response for a form that is no longer open, or was reopened for a
	// different note, must not touch the fields.
	if m.modal != modalNoteCrud || !sameNoteRef(m.crudForID, msg.noteID) {
		return m, nil
	}
	if msg.err != nil {
		m.crudErr = msg.err.Error()
		return m, nil
	}
	m.crudKeys = msg.keys
	if msg.noteID != nil {
		m.crudTitle.SetValue(msg.note.Title)
		m.crudContent.SetValue(msg.note.Content)
		for i, k := range msg.keys {
			if k == msg.note.Category {
				m.crudKeyIdx = i
				break
			}
		}
	}
	return m, nil
}

func (m appModel) onCrudSaved(msg crudSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.crudErr = msg.err.Error()
		return m, nil
	}
	if msg.created {
		m.notice = "Note created."
	} else {
		m.notice = "Note updated."
	}
	m.closeModal()
	// The visible listing must reflect the mutation.
	if m.categoryKey != "" {
		m.notesLoaded = false
		return m, fetchNotesCmd(m.client, m.categoryKey)
	}
	return m, nil
}

func (m appModel) onDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.errText = msg.err.Error()
		m.closeModal()
		return m, nil
	}
	// The deleted note can no longer be "current": back to the library root.
	m.closeModal()
	m.noteLoaded = false
	m.notice = "Note deleted."
	m.view = viewLibrary
	m.categoryKey = ""
	m.categoryName = ""
	return m, fetchCategoriesCmd(m.client)
}

func (m appModel) onStats(msg statsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.errText = msg.err.Error()
		return m, nil
	}
	m.stats = msg.stats
	m.topNotes = msg.top
	m.statsLoaded = true
	return m, nil
}

func (m appModel) onSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	// Drop superseded responses so a slow early query can never clobber the
	// suggestions for what the user is typing now.
	if msg.seq != m.searchSeq {
		return m, nil
	}
	if msg.err != nil {
		if unauthorized(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.suggestions = nil
		return m, nil
	}
	m.suggestions = msg.notes
	m.suggestionIdx = 0
	return m, nil
}

func (m appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalLogin:
		return m.updateLoginModal(msg)
	case modalNoteCrud:
		return m.updateCrudModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmModal(msg)
	}

	switch m.view {
	case viewHome:
		return m.updateHome(msg)
	case viewLibrary:
		return m.updateLibrary(msg)
	case viewCategory:
		return m.updateCategory(msg)
	case viewNote:
		return m.updateNote(msg)
	case viewAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m *appModel) resizeLists() {
	// Leave room for header/footer.
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.categoriesList.SetSize(w, h)
	m.notesList.SetSize(w, h)
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.loginErr = ""
	m.crudErr = ""
	m.crudForID = nil
	m.crudKeys = nil
	m.crudKeyIdx = 0
	m.confirmFocus = confirmFocusConfirm

	m.emailInput.SetValue("")
	m.emailInput.Blur()
	m.passwordInput.SetValue("")
	m.passwordInput.Blur()
	m.crudTitle.SetValue("")
	m.crudTitle.Blur()
	m.crudContent.SetValue("")
	m.crudContent.Blur()
}
