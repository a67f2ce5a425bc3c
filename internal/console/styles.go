package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/crazyeights/internal/deck"
)

type styles struct {
	Header    lipgloss.Style
	Info      lipgloss.Style
	Player    lipgloss.Style
	Prompt    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Playable  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Playable: r.NewStyle().
			Underline(true),
	}
}

// card renders a card in its suit colour
func (s styles) card(c deck.Card) string {
	if c.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}
