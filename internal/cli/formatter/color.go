package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/consonum/timetrack/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TimerStatusPill returns a colored indicator for an active timer's status.
func TimerStatusPill(status domain.TimerStatus) string {
	switch status {
	case domain.TimerRunning:
		return StyleGreen.Render("● Running")
	case domain.TimerPaused:
		return StyleYellow.Render("⏸ Paused")
	default:
		return StyleDim.Render(string(status))
	}
}

// EntryStatusPill returns a colored indicator for a time entry's status.
func EntryStatusPill(status domain.EntryStatus) string {
	switch status {
	case domain.EntryDraft:
		return StyleYellow.Render("○ Draft")
	case domain.EntryCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.EntryInvoiced:
		return StyleBlue.Render("◆ Invoiced")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusPill returns a colored indicator for a project's status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectInactive:
		return StyleDim.Render("○ Inactive")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Swatch renders a small block in the project's display color next to text.
func Swatch(hexColor, text string) string {
	if hexColor == "" {
		return text
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render("■")
	return block + " " + text
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
