package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme for the reader.
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

var (
	Saffron = Theme{
		Name:      "Saffron",
		Primary:   lipgloss.Color("#f5e0c3"),
		Secondary: lipgloss.Color("#c9a97a"),
		Accent:    lipgloss.Color("#ff9933"),
		Muted:     lipgloss.Color("#7a6a55"),
		Error:     lipgloss.Color("#e06c75"),
		Success:   lipgloss.Color("#98c379"),
		Border:    lipgloss.Color("#4a3b28"),
		Highlight: lipgloss.Color("#5c4420"),
	}

	Peacock = Theme{
		Name:      "Peacock",
		Primary:   lipgloss.Color("#d8e8e4"),
		Secondary: lipgloss.Color("#8fb8b0"),
		Accent:    lipgloss.Color("#2ec4b6"),
		Muted:     lipgloss.Color("#5a7470"),
		Error:     lipgloss.Color("#ef476f"),
		Success:   lipgloss.Color("#06d6a0"),
		Border:    lipgloss.Color("#1f3a37"),
		Highlight: lipgloss.Color("#173f3a"),
	}

	Lotus = Theme{
		Name:      "Lotus",
		Primary:   lipgloss.Color("#4c4f69"),
		Secondary: lipgloss.Color("#6c6f85"),
		Accent:    lipgloss.Color("#d7827e"),
		Muted:     lipgloss.Color("#9ca0b0"),
		Error:     lipgloss.Color("#d20f39"),
		Success:   lipgloss.Color("#40a02b"),
		Border:    lipgloss.Color("#ccd0da"),
		Highlight: lipgloss.Color("#f2d5cf"),
	}
)

// All returns every available theme.
func All() []Theme {
	return []Theme{Saffron, Peacock, Lotus}
}

// Get returns a theme by name, defaulting to Saffron. Matching is
// case-insensitive so saved display names resolve too.
func Get(name string) Theme {
	switch strings.ToLower(name) {
	case "peacock":
		return Peacock
	case "lotus":
		return Lotus
	default:
		return Saffron
	}
}

// Styles is the compiled lipgloss style set the TUI renders with.
type Styles struct {
	Header        lipgloss.Style
	ChapterTitle  lipgloss.Style
	VerseText     lipgloss.Style
	VerseNumber   lipgloss.Style
	SectionHeader lipgloss.Style
	Helper        lipgloss.Style
	Error         lipgloss.Style
	Toast         lipgloss.Style
	Bookmark      lipgloss.Style
	Highlight     lipgloss.Style
	Legend        lipgloss.Style
	EmptyState    lipgloss.Style
}

// Styles compiles the theme into the style set used by the reading view.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Border),
		ChapterTitle:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true),
		VerseText:     lipgloss.NewStyle().Foreground(t.Primary),
		VerseNumber:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		SectionHeader: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Helper:        lipgloss.NewStyle().Foreground(t.Muted),
		Error:         lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Toast:         lipgloss.NewStyle().Foreground(t.Success),
		Bookmark:      lipgloss.NewStyle().Foreground(t.Secondary),
		Highlight:     lipgloss.NewStyle().Foreground(t.Primary).Background(t.Highlight),
		Legend:        lipgloss.NewStyle().Foreground(t.Muted),
		EmptyState:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
	}
}
