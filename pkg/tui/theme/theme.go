package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Calendar CalendarTheme
	Detail   PanelTheme
	Alert    AlertTheme
	Footer   FooterTheme

	// Dark is set for dark terminal backgrounds.
	Dark bool

	// Fade runs from the top of the calendar to the bottom; month titles
	// further down the screen pick colors further along it.
	Fade Gradient
}

// CalendarTheme styles month rows and the weekday strip.
type CalendarTheme struct {
	Weekdays  lipgloss.Style
	Separator lipgloss.Style
	Empty     lipgloss.Style
	Entry     lipgloss.Style
	Today     lipgloss.Style
	Cursor    lipgloss.Style
	Missing   lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
}

// AlertTheme styles confirmation dialogs.
type AlertTheme struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Message     lipgloss.Style
	Action      lipgloss.Style
	Selected    lipgloss.Style
	Destructive lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Gradient blends between two colors.
type Gradient struct {
	From colorful.Color
	To   colorful.Color
}

// At returns the hex color at position t in [0, 1].
func (g Gradient) At(t float64) string {
	switch {
	case t <= 0:
		return g.From.Hex()
	case t >= 1:
		return g.To.Hex()
	}
	return g.From.BlendLab(g.To, t).Clamped().Hex()
}

// Style returns a bold foreground style at position t.
func (g Gradient) Style(t float64) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.At(t)))
}

// Default returns the built-in theme, picking the fade for the terminal's
// background.
func Default() Theme {
	return ForBackground(termenv.HasDarkBackground())
}

// ForBackground returns the theme for a dark or light terminal.
func ForBackground(dark bool) Theme {
	from, to := "#FFFFFF", "#5F5F87"
	if !dark {
		from, to = "#1C1C1C", "#B2B2B2"
	}
	return Theme{
		Dark: dark,
		Calendar: CalendarTheme{
			Weekdays:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Entry:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Today:     lipgloss.NewStyle().Underline(true),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Missing:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Detail: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Alert: AlertTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:       lipgloss.NewStyle().Bold(true),
			Message:     lipgloss.NewStyle(),
			Action:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Selected:    lipgloss.NewStyle().Reverse(true),
			Destructive: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Fade: Gradient{From: mustHex(from), To: mustHex(to)},
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
