package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: indicator names, file paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for created and added indicators.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified indicators.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for removed indicators.
	colorRed = lipgloss.Color("196")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// colorDimGray is used for borders and other structural chrome.
	colorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (indicator names, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Indicator status constants.
const (
	StatusCreated   = "created"
	StatusAdded     = "added"
	StatusModified  = "modified"
	StatusRemoved   = "removed"
	StatusUnchanged = "unchanged"
)

// statusStyle returns the lipgloss style for a given indicator status.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusAdded:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// minNameColumnWidth is the minimum width for the indicator name column
// before the status suffix.
const minNameColumnWidth = 56

// FormatIndicatorLine renders an indicator name with a right-aligned,
// color-coded status suffix.
//
// Format: i:<name>  <status>
func FormatIndicatorLine(name, status string) string {
	padding := minNameColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("i:")
	styledName := StyleNoun.Render(name)
	styledStatus := statusStyle(status).Render(status)

	return prefix + styledName + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}
