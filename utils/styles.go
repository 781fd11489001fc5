package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var (
	CriticalColor = lipgloss.Color("#CC3333") // Dark red
	WarningColor  = lipgloss.Color("#FF8800") // Orange
	GoodColor     = lipgloss.Color("#228B22") // Forest green
	InfoColor     = lipgloss.Color("#4682B4") // Steel blue
	TextColor     = lipgloss.Color("#CCCCCC") // Light gray
	MutedColor    = lipgloss.Color("#888888") // Medium gray
	BorderColor   = lipgloss.Color("#666666") // Dark gray
)

var (
	CriticalStyle = lipgloss.NewStyle().Foreground(CriticalColor).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	GoodStyle     = lipgloss.NewStyle().Foreground(GoodColor).Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(InfoColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	TextStyle     = lipgloss.NewStyle().Foreground(TextColor)
)

var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(InfoColor).
			Padding(0, 1).
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(lipgloss.Color("#1a1a1a")).
			Bold(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(MutedColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(CriticalColor).
			Background(lipgloss.Color("#1a1a1a")).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CriticalColor)

	HelpBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Background(lipgloss.Color("#1a1a1a")).
			Padding(0, 1)
)

// CreateProgressBar renders a filled/empty bar for a 0-1 fraction.
func CreateProgressBar(fraction float64, width int, color lipgloss.Color) string {
	if width < 4 {
		return fmt.Sprintf("%.0f%%", fraction*100)
	}

	filled := int(math.Round(fraction * float64(width)))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if color != "" {
		bar = lipgloss.NewStyle().Foreground(color).Render(bar)
	}

	return bar
}

// GetShareStyle picks a severity color for a node's share of total heap bytes.
func GetShareStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction >= 0.5:
		return CriticalStyle
	case fraction >= 0.2:
		return WarningStyle
	case fraction >= 0.05:
		return InfoStyle
	default:
		return MutedStyle
	}
}

// FormatKeyValue renders a label/value pair aligned to keyWidth.
func FormatKeyValue(key, value string, keyWidth int) string {
	keyStyled := InfoStyle.Width(keyWidth).Render(key + ":")
	valueStyled := TextStyle.Render(value)
	return lipgloss.JoinHorizontal(lipgloss.Left, keyStyled, " ", valueStyled)
}

// TruncateString truncates a string to fit within maxWidth, used for long
// heap-node labels (addresses, file:line fragments) in fixed-width panes.
func TruncateString(s string, maxWidth int) string {
	if len(s) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return strings.Repeat(".", maxWidth)
	}
	return s[:maxWidth-3] + "..."
}

// SanitizeString strips control characters from free-form label text before
// it reaches the terminal.
func SanitizeString(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			result = append(result, r)
		}
	}
	return string(result)
}
