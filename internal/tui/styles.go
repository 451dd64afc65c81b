package tui

import (
	"github.com/charmbracelet/lipgloss"

	"todolist/internal/models"
)

var (
	colorBgDark   = lipgloss.Color("#2b2b2b")
	colorFgDark   = lipgloss.Color("#ffffff")
	colorPrimary  = lipgloss.Color("#3b82f6")
	colorMuted    = lipgloss.Color("#808080")
	colorError    = lipgloss.Color("#ff5555")
	colorSelected = lipgloss.Color("#444444")
)

// styles is the set of styles for one theme.
type styles struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Cursor   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Prompt   lipgloss.Style
	priority map[models.ColorHint]lipgloss.Style
}

func newStyles(dark bool) styles {
	s := styles{
		Base:    lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Label:   lipgloss.NewStyle().Foreground(colorMuted),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Cursor:  lipgloss.NewStyle().Bold(true),
		Status:  lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Help:    lipgloss.NewStyle().Foreground(colorMuted),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
	}

	s.priority = map[models.ColorHint]lipgloss.Style{}
	for _, hint := range []models.ColorHint{models.ColorAlert, models.ColorCaution, models.ColorNormal} {
		s.priority[hint] = lipgloss.NewStyle().Foreground(lipgloss.Color(hint.Hex()))
	}

	if dark {
		s.Base = s.Base.Background(colorBgDark).Foreground(colorFgDark)
		s.Cursor = s.Cursor.Background(colorSelected)
	} else {
		s.Cursor = s.Cursor.Reverse(true)
	}

	return s
}

func (s styles) forPriority(hint models.ColorHint) lipgloss.Style {
	return s.priority[hint]
}
