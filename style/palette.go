package style

import "github.com/charmbracelet/lipgloss"

// Palette of the player TUI.
var (
	Text    = lipgloss.Color("#e4e4e7")
	Subtext = lipgloss.Color("#a1a1aa")
	Surface = lipgloss.Color("#27272a")

	AccentColor  = lipgloss.Color("#a78bfa")
	SuccessColor = lipgloss.Color("#86efac")
	WarningColor = lipgloss.Color("#fde68a")
	ErrorColor   = lipgloss.Color("#fca5a5")
	FaintColor   = lipgloss.Color("#71717a")

	BorderColor       = Surface
	ActiveBorderColor = AccentColor
)
