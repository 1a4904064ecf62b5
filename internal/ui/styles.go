package ui

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the StreamFinder web look: red accent on near-black zinc.
var (
	accent = lipgloss.Color("#DC2626")
	zinc   = lipgloss.Color("#A1A1AA")
	dim    = lipgloss.Color("#52525B")
	white  = lipgloss.Color("#FAFAFA")
	amber  = lipgloss.Color("#F59E0B")

	logoStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(accent).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(white).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(dim).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(accent).
			Padding(0, 1)

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#18181B")).
			Background(amber).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(zinc).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1)

	bodyStyle = lipgloss.NewStyle().
			Foreground(zinc)

	dimStyle = lipgloss.NewStyle().
			Foreground(dim)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(amber).
			Bold(true)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ADE80")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(accent).
			Padding(0, 1)
)
