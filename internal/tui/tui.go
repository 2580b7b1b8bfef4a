package tui

import (
	"clinroots-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(client *api.Client) error {
	m := newAppModel(client)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
