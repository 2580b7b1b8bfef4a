package tui

import (
	"strings"

	"clinroots-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// openCrudModal opens the structured create/update form. A nil id is create
// mode; otherwise the form pre-populates from a fresh fetch of the note,
// alongside the full category enumeration for the picker.
func (m *appModel) openCrudModal(noteID *int) tea.Cmd {
	m.modal = modalNoteCrud
	m.crudForID = noteID
	m.crudErr = ""
	m.crudKeys = nil
	m.crudKeyIdx = 0
	m.crudFocus = crudFocusTitle
	m.crudTitle.SetValue("")
	m.crudContent.SetValue("")
	m.crudTitle.Focus()
	m.crudContent.Blur()
	return crudPrefillCmd(m.client, noteID)
}

func (m appModel) updateCrudModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab":
		down := msg.String() == "tab"
		m.crudFocus = nextCrudFocus(m.crudFocus, down)
		m.crudTitle.Blur()
		m.crudContent.Blur()
		switch m.crudFocus {
		case crudFocusTitle:
			return m, m.crudTitle.Focus()
		case crudFocusContent:
			return m, m.crudContent.Focus()
		}
		return m, nil
	}

	switch m.crudFocus {
	case crudFocusCategory:
		switch msg.String() {
		case "left", "up", "k":
			if m.crudKeyIdx > 0 {
				m.crudKeyIdx--
			}
			return m, nil
		case "right", "down", "j":
			if m.crudKeyIdx < len(m.crudKeys)-1 {
				m.crudKeyIdx++
			}
			return m, nil
		}
		return m, nil
	case crudFocusSubmit:
		if msg.String() == "enter" {
			return m.submitCrud()
		}
		return m, nil
	case crudFocusCancel:
		if msg.String() == "enter" {
			m.closeModal()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.crudFocus {
	case crudFocusTitle:
		m.crudTitle, cmd = m.crudTitle.Update(msg)
	case crudFocusContent:
		m.crudContent, cmd = m.crudContent.Update(msg)
	}
	return m, cmd
}

// submitCrud validates locally before any request goes out: an empty title
// never reaches the backend.
func (m appModel) submitCrud() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.crudTitle.Value())
	if title == "" {
		m.crudErr = "Title is required."
		return m, nil
	}
	if len(m.crudKeys) == 0 {
		m.crudErr = "Categories are still loading."
		return m, nil
	}
	p := api.NotePayload{
		Title:    title,
		Category: m.crudKeys[m.crudKeyIdx],
		Content:  m.crudContent.Value(),
	}
	m.crudErr = ""
	return m, crudSubmitCmd(m.client, m.crudForID, p)
}

func nextCrudFocus(f crudFocus, down bool) crudFocus {
	order := []crudFocus{crudFocusTitle, crudFocusCategory, crudFocusContent, crudFocusSubmit, crudFocusCancel}
	for i, cur := range order {
		if cur != f {
			continue
		}
		if down {
			return order[(i+1)%len(order)]
		}
		return order[(i+len(order)-1)%len(order)]
	}
	return crudFocusTitle
}
