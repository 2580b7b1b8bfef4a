package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Save-feedback tints for live-edit regions. Mirrors the web client's
	// short green/red background pulse after a save settles.
	colorFlashOkBg  lipgloss.TerminalColor = ac("#d9f0e2", "#193e37")
	colorFlashErrBg lipgloss.TerminalColor = ac("#f6dcdc", "#542626")

	colorErrorFg lipgloss.TerminalColor = ac("124", "203")
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// flashStyle returns the tint for a region whose save just settled.
func flashStyle(kind string) lipgloss.Style {
	if kind == "ok" {
		return lipgloss.NewStyle().Background(colorFlashOkBg).Foreground(colorSurfaceFg)
	}
	return lipgloss.NewStyle().Background(colorFlashErrBg).Foreground(colorSurfaceFg)
}

func modalBodyWidth(width int) int {
	w := width - 8
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSelectedFg).
		Background(colorSurfaceBg).
		Width(bodyW).
		Render(title)

	box := lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(1, 2).
		Width(bodyW + 4)

	return box.Render(titleLine + "\n\n" + content)
}
