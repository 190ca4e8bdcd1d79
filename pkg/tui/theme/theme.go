package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Panel  PanelTheme
	List   ListTheme
	Footer FooterTheme
}

// HeaderTheme styles the section tab strip.
type HeaderTheme struct {
	Section       lipgloss.Style
	ActiveSection lipgloss.Style
	Actor         lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
}

// ListTheme styles the rows of a section list.
type ListTheme struct {
	Row      lipgloss.Style
	Selected lipgloss.Style
	Glyph    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	return Theme{
		Header: HeaderTheme{
			Section:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
			ActiveSection: active.Reverse(true).Padding(0, 1),
			Actor:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		List: ListTheme{
			Row:      lipgloss.NewStyle(),
			Selected: active,
			Glyph:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Prompt: active,
		},
	}
}
