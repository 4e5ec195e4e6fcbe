package markdown

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal palette used for rendered markdown and ticket views.
// Colors are ANSI 256 codes.
type Theme struct {
	Text    lipgloss.Color
	Faint   lipgloss.Color
	Heading lipgloss.Color
	Border  lipgloss.Color
	Link    lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// CodeStyle is the chroma style name for fenced code blocks.
	CodeStyle string
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	Text:      lipgloss.Color("252"),
	Faint:     lipgloss.Color("245"),
	Heading:   lipgloss.Color("255"),
	Border:    lipgloss.Color("240"),
	Link:      lipgloss.Color("75"),
	Accent:    lipgloss.Color("141"),
	Success:   lipgloss.Color("114"),
	Warning:   lipgloss.Color("220"),
	Error:     lipgloss.Color("196"),
	CodeStyle: "monokai",
}
