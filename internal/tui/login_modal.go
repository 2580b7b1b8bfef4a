package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) openLoginModal() {
	m.modal = modalLogin
	m.loginFocus = loginFocusEmail
	m.loginErr = ""
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.emailInput.Focus()
	m.passwordInput.Blur()
}

func (m appModel) updateLoginModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab":
		down := msg.String() == "tab"
		m.loginFocus = nextLoginFocus(m.loginFocus, down)
		m.emailInput.Blur()
		m.passwordInput.Blur()
		switch m.loginFocus {
		case loginFocusEmail:
			return m, m.emailInput.Focus()
		case loginFocusPassword:
			return m, m.passwordInput.Focus()
		}
		return m, nil
	case "enter":
		// Enter submits from the password field or the submit control.
		if m.loginFocus == loginFocusEmail {
			m.loginFocus = loginFocusPassword
			m.emailInput.Blur()
			return m, m.passwordInput.Focus()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case loginFocusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case loginFocusPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		m.loginErr = "Email and password are required."
		return m, nil
	}
	m.loginErr = ""
	return m, loginCmd(m.client, email, password)
}

func nextLoginFocus(f loginFocus, down bool) loginFocus {
	order := []loginFocus{loginFocusEmail, loginFocusPassword, loginFocusSubmit}
	for i, cur := range order {
		if cur != f {
			continue
		}
		if down {
			return order[(i+1)%len(order)]
		}
		return order[(i+len(order)-1)%len(order)]
	}
	return loginFocusEmail
}
