package terminal

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAuto   = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
)

var (
	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)
	styleAuto  = lipgloss.NewStyle().Foreground(colorAuto)

	styleStat      = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleStatLabel = lipgloss.NewStyle().Foreground(colorDim)

	styleTimestamp = lipgloss.NewStyle().Foreground(colorAccent)
	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
