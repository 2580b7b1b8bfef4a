package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	header := styleHeader().Render(m.breadcrumbText())

	var body string
	switch m.modal {
	case modalLogin:
		body = m.viewLoginModal()
	case modalNoteCrud:
		body = m.viewCrudModal()
	case modalConfirmDelete:
		body = renderConfirmModal(m.width, "Delete note",
			fmt.Sprintf("Delete %q? This cannot be undone.", m.note.Title),
			"Delete", "Cancel", m.confirmFocus)
	default:
		switch m.view {
		case viewHome:
			body = m.viewHome()
		case viewLibrary:
			body = m.viewLibrary()
		case viewCategory:
			body = m.viewCategory()
		case viewNote:
			body = m.viewNote()
		case viewAdmin:
			body = m.viewAdmin()
		}
	}

	return strings.Join([]string{header, body, m.footer()}, "\n\n")
}

func (m appModel) breadcrumbText() string {
	parts := []string{"ClinicalRoots"}
	switch m.view {
	case viewLibrary:
		parts = append(parts, "Library")
	case viewCategory:
		parts = append(parts, "Library", m.categoryName)
	case viewNote:
		parts = append(parts, "Library", m.categoryName, m.note.Title)
	case viewAdmin:
		parts = append(parts, "Admin")
	}
	crumb := strings.Join(parts, " › ")
	if m.loggedIn {
		return crumb + "   " + styleMuted().Render(string(m.user.Role)+" "+m.user.Email)
	}
	return crumb + "   " + styleMuted().Render("not signed in")
}

func (m appModel) footer() string {
	var help string
	switch {
	case m.modal != modalNone:
		help = "tab: focus  enter: select  esc: cancel"
	case m.view == viewHome:
		help = "b: library  " + m.authHelp() + "  q: quit"
	case m.view == viewLibrary:
		help = "enter: open  /: search  " + m.adminHelp("n: new note  ") + "esc: back  q: quit"
	case m.view == viewCategory:
		help = "enter: open  " + m.adminHelp("n: new note  ") + "esc: back  q: quit"
	case m.view == viewNote:
		help = m.adminHelp("tab: edit fields  e: edit form  d: delete  ") + "esc: back  q: quit"
	case m.view == viewAdmin:
		help = "r: refresh  esc: back  q: quit"
	}

	lines := []string{styleMuted().Render(help)}
	if m.notice != "" {
		lines = append(lines, m.notice)
	}
	if m.errText != "" {
		lines = append(lines, styleError().Render(m.errText))
	}
	if m.saveErrText != "" {
		lines = append(lines, styleError().Render("Save failed: "+m.saveErrText))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) authHelp() string {
	if m.loggedIn {
		if m.user.IsAdmin() {
			return "a: admin  o: logout"
		}
		return "o: logout"
	}
	return "l: login"
}

func (m appModel) adminHelp(s string) string {
	if m.loggedIn && m.user.IsAdmin() {
		return s
	}
	return ""
}

func (m appModel) viewHome() string {
	lines := []string{
		"Welcome to ClinicalRoots.",
		"",
		"Browse categorized clinical notes, search titles, and (for admins)",
		"edit content in place.",
	}
	if !m.loggedIn {
		lines = append(lines, "", styleMuted().Render("You are browsing anonymously; press l to sign in."))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewLibrary() string {
	search := m.searchInput.View()
	var sb strings.Builder
	sb.WriteString(search)
	sb.WriteString("\n")
	for i, s := range m.suggestions {
		line := fmt.Sprintf("%s  %s", s.Title, styleMuted().Render(categoryDisplayName(s.Category)))
		if i == m.suggestionIdx {
			line = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.categoriesList.View())
	return sb.String()
}

func (m appModel) viewCategory() string {
	if !m.notesLoaded {
		return styleMuted().Render("Loading notes…")
	}
	if m.notesEmpty {
		// An explicit empty state, not a blank container.
		return "No notes available."
	}
	return m.notesList.View()
}

func (m appModel) viewNote() string {
	if !m.noteLoaded {
		return styleMuted().Render("Loading…")
	}

	meta := styleMuted().Render(fmt.Sprintf("%s   Views: %d",
		categoryDisplayName(m.note.Category), m.note.Views))

	editable := m.editor.state(m.note.ID) != editReadOnly

	var title, content string
	if editable {
		title = m.titleInput.View()
		content = m.contentArea.View()
	} else {
		// Non-privileged identities never see an editable affordance.
		title = styleHeader().Render(m.note.Title)
		w := m.width - 4
		if w < 20 {
			w = 76
		}
		content = renderMarkdown(m.note.Content, w)
	}

	if m.hasFlash && m.flashFor == m.note.ID {
		st := flashStyle(m.flashKind)
		if m.flashField == fieldTitle {
			title = st.Render(title)
		} else {
			content = st.Render(content)
		}
	}

	parts := []string{title, meta, "", content}
	if editable {
		state := m.editor.state(m.note.ID)
		if state == editSaving {
			parts = append(parts, "", styleMuted().Render("Saving…"))
		} else {
			parts = append(parts, "", styleMuted().Render("Live edit: changes save when a field loses focus."))
		}
	}
	return strings.Join(parts, "\n")
}

func (m appModel) viewAdmin() string {
	if !m.statsLoaded {
		return styleMuted().Render("Loading dashboard…")
	}
	lastUpdate := m.stats.LastUpdate
	if strings.TrimSpace(lastUpdate) == "" {
		lastUpdate = "N/A"
	}
	var sb strings.Builder
	sb.WriteString(styleHeader().Render("Dashboard"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Total notes: %d\n", m.stats.TotalNotes))
	sb.WriteString(fmt.Sprintf("Total users: %d\n", m.stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("Total views: %d\n", m.stats.TotalViews))
	sb.WriteString(fmt.Sprintf("Last update: %s\n", lastUpdate))
	sb.WriteString("\n")
	sb.WriteString(styleHeader().Render("Top viewed"))
	sb.WriteString("\n")
	if len(m.topNotes) == 0 {
		sb.WriteString(styleMuted().Render("No views recorded yet."))
	}
	for _, n := range m.topNotes {
		sb.WriteString(fmt.Sprintf("%s (%d)\n", n.Title, n.Views))
	}
	return sb.String()
}

func (m appModel) viewLoginModal() string {
	focusMark := func(f loginFocus, label string) string {
		if m.loginFocus == f {
			return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("▸ " + label)
		}
		return "  " + label
	}

	lines := []string{
		focusMark(loginFocusEmail, "Email"),
		m.emailInput.View(),
		"",
		focusMark(loginFocusPassword, "Password"),
		m.passwordInput.View(),
		"",
		focusMark(loginFocusSubmit, "[ Sign in ]"),
	}
	if m.loginErr != "" {
		lines = append(lines, "", styleError().Render(m.loginErr))
	}
	return renderModalBox(m.width, "Sign in", strings.Join(lines, "\n"))
}

func (m appModel) viewCrudModal() string {
	title := "Add Note"
	submit := "[ Create ]"
	if m.crudForID != nil {
		title = "Edit Note"
		submit = "[ Update ]"
	}

	focusMark := func(f crudFocus, label string) string {
		if m.crudFocus == f {
			return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("▸ " + label)
		}
		return "  " + label
	}

	category := styleMuted().Render("loading…")
	if len(m.crudKeys) > 0 {
		category = fmt.Sprintf("◂ %s ▸  (%d/%d)", m.crudKeys[m.crudKeyIdx], m.crudKeyIdx+1, len(m.crudKeys))
	}

	lines := []string{
		focusMark(crudFocusTitle, "Title"),
		m.crudTitle.View(),
		"",
		focusMark(crudFocusCategory, "Category"),
		category,
		"",
		focusMark(crudFocusContent, "Content"),
		m.crudContent.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			focusMark(crudFocusSubmit, submit), "  ",
			focusMark(crudFocusCancel, "[ Cancel ]")),
	}
	if m.crudErr != "" {
		lines = append(lines, "", styleError().Render(m.crudErr))
	}
	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
