package theme

import "github.com/charmbracelet/lipgloss"

// Styles is every style the UI and the text renderers draw with.
type Styles struct {
	Mode    Mode
	Palette Palette

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	SectionHeader lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Accent        lipgloss.Style
	Helper        lipgloss.Style
	Error         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style

	SearchHighlight lipgloss.Style
	SearchCurrent   lipgloss.Style
	CurrentLine     lipgloss.Style

	StatusBar lipgloss.Style
	Key       lipgloss.Style
	KeyDesc   lipgloss.Style
	LegendBox lipgloss.Style
	HelpBox   lipgloss.Style

	HeroTitle lipgloss.Style
	HeroBox   lipgloss.Style
	Tagline   lipgloss.Style
	Panel     lipgloss.Style
	DropZone  lipgloss.Style
	AlertBox  lipgloss.Style
	BadgeUp   lipgloss.Style
	BadgeDown lipgloss.Style
}

// Build derives the full style set from a palette.
func Build(p Palette) *Styles {
	return &Styles{
		Palette: p,

		Title:         lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Underline(true),
		Subtitle:      lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		SectionHeader: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Label:         lipgloss.NewStyle().Foreground(p.Secondary),
		Value:         lipgloss.NewStyle().Foreground(p.Foreground),
		Accent:        lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Helper:        lipgloss.NewStyle().Foreground(p.Muted),
		Error:         lipgloss.NewStyle().Foreground(p.Error),
		Success:       lipgloss.NewStyle().Foreground(p.Success),
		Warning:       lipgloss.NewStyle().Foreground(p.Warning),

		SearchHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(p.Highlight),
		SearchCurrent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(p.Current),
		CurrentLine:     lipgloss.NewStyle().Foreground(p.Surface).Background(p.Primary),

		StatusBar: lipgloss.NewStyle().Foreground(p.Surface).Background(p.Primary).Padding(0, 1),
		Key:       lipgloss.NewStyle().Bold(true).Foreground(p.Surface).Background(p.Warning).Padding(0, 1),
		KeyDesc:   lipgloss.NewStyle().Foreground(p.Foreground),
		LegendBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2),
		HelpBox:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Secondary).Padding(1, 2),

		HeroTitle: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		HeroBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Accent).Padding(1, 2),
		Tagline:   lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border).Padding(0, 1),
		DropZone:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 2),
		AlertBox:  lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.Error).Padding(1, 2),
		BadgeUp:   lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		BadgeDown: lipgloss.NewStyle().Foreground(p.Error).Bold(true),
	}
}

// Plain returns styles that render text unchanged. Used for headless output.
func Plain() *Styles {
	s := lipgloss.NewStyle()
	return &Styles{
		Title: s, Subtitle: s, SectionHeader: s, Label: s, Value: s, Accent: s,
		Helper: s, Error: s, Success: s, Warning: s,
		SearchHighlight: s, SearchCurrent: s, CurrentLine: s,
		StatusBar: s, Key: s, KeyDesc: s, LegendBox: s, HelpBox: s,
		HeroTitle: s, HeroBox: s, Tagline: s, Panel: s, DropZone: s, AlertBox: s,
		BadgeUp: s, BadgeDown: s,
	}
}
