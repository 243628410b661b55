package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the panel around the scanlines. Scanline pixels always use
// their own colors.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
}

var (
	ThemeDusk = Theme{
		Name:    "dusk",
		Primary: lipgloss.Color("#ffb86c"),
		Accent:  lipgloss.Color("#ff79c6"),
		Text:    lipgloss.Color("#f8f8f2"),
		Muted:   lipgloss.Color("#6272a4"),
		Border:  lipgloss.Color("#44475a"),
	}

	ThemeSlate = Theme{
		Name:    "slate",
		Primary: lipgloss.Color("#00ccff"),
		Accent:  lipgloss.Color("#00ff88"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#bbbbbb"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#777777"),
		Border:  lipgloss.Color("#555555"),
	}

	Themes = []Theme{ThemeDusk, ThemeSlate, ThemeMono}

	CurrentTheme = ThemeDusk
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDusk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
