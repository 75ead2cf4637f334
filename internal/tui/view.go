package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/paperlens/internal/intake"
	"github.com/csheth/paperlens/internal/results"
	"github.com/csheth/paperlens/internal/theme"
)

var logoArtLines = []string{
	"██████╗   █████╗  ██████╗  ███████╗ ██████╗  ██╗      ███████╗ ███╗   ██╗ ███████╗",
	"██╔══██╗ ██╔══██╗ ██╔══██╗ ██╔════╝ ██╔══██╗ ██║      ██╔════╝ ████╗  ██║ ██╔════╝",
	"██████╔╝ ███████║ ██████╔╝ █████╗   ██████╔╝ ██║      █████╗   ██╔██╗ ██║ ███████╗",
	"██╔═══╝  ██╔══██║ ██╔═══╝  ██╔══╝   ██╔══██╗ ██║      ██╔══╝   ██║╚██╗██║ ╚════██║",
	"██║      ██║  ██║ ██║      ███████╗ ██║  ██║ ███████╗ ███████╗ ██║ ╚████║ ███████║",
	"╚═╝      ╚═╝  ╚═╝ ╚═╝      ╚══════╝ ╚═╝  ╚═╝ ╚══════╝ ╚══════╝ ╚═╝  ╚═══╝ ╚══════╝",
}

func (m *model) View() string {
	switch m.stage {
	case stageIntake:
		return m.viewIntake()
	case stagePicker:
		return m.viewPicker()
	case stageLoading:
		return m.viewLoading()
	case stageResults:
		return m.viewResults()
	case stageSearch:
		return m.viewSearch()
	case stageAlert:
		return m.viewAlert()
	default:
		return ""
	}
}

func (m *model) viewIntake() string {
	s := m.styles()
	parts := []string{m.heroView(), m.dropZoneView()}
	if m.file != nil {
		parts = append(parts, m.fileCardView())
	}
	if m.errorMessage != "" {
		parts = append(parts, s.Error.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, s.Helper.Render(m.infoMessage))
	}
	if m.showFeatures {
		parts = append(parts, m.showcaseView())
	}
	parts = append(parts, m.hintLine())
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) viewPicker() string {
	s := m.styles()
	var b strings.Builder
	b.WriteString(s.SectionHeader.Render("Browse for a paper"))
	b.WriteRune('\n')
	b.WriteString(s.Helper.Render(m.picker.CurrentDirectory))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.picker.View())
	parts := []string{m.heroView(), s.Panel.Render(b.String())}
	if m.errorMessage != "" {
		parts = append(parts, s.Error.Render(m.errorMessage))
	}
	parts = append(parts, s.Helper.Render("↑/↓ move · → or Enter open · ← parent folder · Esc close"))
	return joinNonEmpty(parts)
}

func (m *model) viewLoading() string {
	s := m.styles()
	name := "paper"
	if m.file != nil {
		name = m.file.Name
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Analyzing %s…", m.spinner.View(), s.Accent.Render(name)))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(m.bar.ViewAs(m.simulator.Fraction()))
	b.WriteString(fmt.Sprintf(" %3d%% ", m.simulator.Percent()))
	b.WriteString(s.Helper.Render("(estimated)"))
	b.WriteRune('\n')
	b.WriteRune('\n')
	b.WriteString(s.Helper.Render(wordwrap.String("The backend does not report progress, so this bar is an estimate. It holds below 100% until the analysis returns.", m.wrapWidth())))
	parts := []string{m.heroView(), s.Panel.Render(b.String()), s.Helper.Render("Press r or Esc to cancel, Ctrl+C to quit.")}
	return joinNonEmpty(parts)
}

func (m *model) viewResults() string {
	s := m.styles()
	m.refreshViewportIfDirty()
	parts := []string{m.resultsHeader(), m.statusBarView(), m.viewport.View()}
	if status := m.searchStatusLine(); status != "" {
		parts = append(parts, s.Helper.Render(status))
	}
	if m.errorMessage != "" {
		parts = append(parts, s.Error.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, s.Helper.Render(m.infoMessage))
	}
	parts = append(parts, m.hintLine())
	if m.helpVisible {
		parts = append(parts, m.keyLegendView(), m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) viewSearch() string {
	s := m.styles()
	var b strings.Builder
	b.WriteString(s.SectionHeader.Render("Search Analysis"))
	b.WriteRune('\n')
	b.WriteString(m.searchInput.View())
	b.WriteRune('\n')
	b.WriteString(s.Helper.Render("Press Enter to apply search, Esc to cancel."))
	return joinNonEmpty([]string{m.resultsHeader(), b.String()})
}

func (m *model) viewAlert() string {
	s := m.styles()
	body := strings.Join([]string{
		s.Error.Bold(true).Render("Report export failed"),
		"",
		wordwrap.String(m.alertMessage, 60),
		"",
		s.Helper.Render("Press Enter to dismiss."),
	}, "\n")
	box := s.AlertBox.Render(body)
	if m.layout.windowWidth > 0 && m.layout.windowHeight > 0 {
		return lipgloss.Place(m.layout.windowWidth, m.layout.windowHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *model) heroView() string {
	s := m.styles()
	var title string
	if m.layout.showLogo() {
		title = renderLogo(s)
	} else {
		title = s.HeroTitle.Render("PaperLens")
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		s.Tagline.Render(heroTagline),
		m.healthBadge(),
	)
}

func (m *model) healthBadge() string {
	s := m.styles()
	backend := ""
	if m.config.Backend != "" {
		backend = s.Helper.Render(" " + m.config.Backend)
	}
	switch {
	case m.config.Health == nil || !m.healthKnown:
		return s.Helper.Render("○ backend") + backend
	case m.backendErr != nil:
		return s.BadgeDown.Render("● backend offline") + backend
	default:
		return s.BadgeUp.Render("● backend online") + backend
	}
}

func (m *model) dropZoneView() string {
	s := m.styles()
	lines := []string{
		s.SectionHeader.Render("Drop a paper here"),
		m.composer.View(),
		s.Helper.Render(fmt.Sprintf("PDF, DOCX or TXT up to %dMB · Ctrl+O to browse", intake.MaxUploadBytes/(1024*1024))),
	}
	if m.config.InboxDir != "" {
		lines = append(lines, s.Helper.Render("Watching inbox "+m.config.InboxDir))
	}
	return s.DropZone.Render(strings.Join(lines, "\n"))
}

func (m *model) fileCardView() string {
	s := m.styles()
	f := m.file
	rows := []string{
		s.Subtitle.Render("Selected file"),
		field(s, "Name", f.Name),
		field(s, "Size", results.KB(f.SizeKB())),
		field(s, "Type", strings.ToUpper(f.Ext)),
	}
	if f.Pages > 0 {
		rows = append(rows, field(s, "Pages", fmt.Sprintf("%d", f.Pages)))
	}
	return s.Panel.Render(strings.Join(rows, "\n"))
}

func field(s *theme.Styles, label, value string) string {
	return s.Label.Render(label+": ") + s.Value.Render(value)
}

func (m *model) showcaseView() string {
	s := m.styles()
	wrap := m.wrapWidth() - 6
	rows := []string{s.SectionHeader.Render("What PaperLens extracts")}
	for _, f := range showcaseFeatures() {
		desc := wordwrap.String(f.Description, wrap)
		rows = append(rows, " • "+s.Accent.Render(f.Title))
		rows = append(rows, indentLines(s.Helper.Render(desc), "   "))
	}
	return strings.Join(rows, "\n")
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m *model) resultsHeader() string {
	s := m.styles()
	name := m.uploadName()
	if name == "" {
		name = "analysis"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.HeroTitle.Render("PaperLens"),
		s.Helper.Render("  ·  "),
		s.Subtitle.Render(name),
		s.Helper.Render("  "),
		m.healthBadge(),
	)
}

// statusBarView summarizes the result in one line.
func (m *model) statusBarView() string {
	var stats []string
	if r := m.result; r != nil {
		if r.TopicClassification != nil {
			stats = append(stats, "Topic "+r.TopicClassification.PrimaryTopic)
		}
		if r.QualityScore != nil {
			stats = append(stats, fmt.Sprintf("Quality %.1f", r.QualityScore.OverallScore))
		}
		if r.Statistics != nil {
			stats = append(stats, fmt.Sprintf("Words %d", r.Statistics.WordCount))
		}
		if r.ProcessingTime > 0 {
			stats = append(stats, fmt.Sprintf("%.2fs", r.ProcessingTime))
		}
	}
	if m.downloading {
		stats = append(stats, m.spinner.View()+" report")
	}
	stats = append(stats, "Theme "+m.config.Theme.Mode().String())
	return m.styles().StatusBar.Render(strings.Join(stats, "  •  "))
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) hintLine() string {
	var hints []keyHint
	switch m.stage {
	case stageResults:
		hints = []keyHint{{"d", "report"}, {"e", "json"}, {"/", "search"}, {"[ ]", "sections"}, {"t", "theme"}, {"r", "new paper"}, {"?", "help"}}
	default:
		if m.composer.Focused() {
			hints = []keyHint{{"enter", "select"}, {"ctrl+o", "browse"}, {"tab", "leave input"}, {"ctrl+t", "theme"}, {"ctrl+c", "quit"}}
		} else {
			hints = []keyHint{{"enter/a", "analyze"}, {"tab", "edit path"}, {"o", "browse"}, {"t", "theme"}, {"r", "reset"}, {"?", "help"}}
		}
	}
	s := m.styles()
	cells := make([]string, 0, len(hints))
	for _, h := range hints {
		cells = append(cells, s.Accent.Render(h.Key)+" "+s.Helper.Render(h.Description))
	}
	return strings.Join(cells, s.Helper.Render("  ·  "))
}

func (m *model) keyLegendView() string {
	s := m.styles()
	hints := []keyHint{
		{"↑/↓", "Scroll"},
		{"[/]", "Prev/next section"},
		{"g/G", "Top or bottom"},
		{"/", "Search"},
		{"n/N", "Next match"},
		{"d", "Download PDF report"},
		{"e", "Export JSON"},
		{"a", "Analyze again"},
		{"t", "Toggle theme"},
		{"r", "New paper"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	rows := []string{s.SectionHeader.Render("Navigation Cheatsheet")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := s.Key.Render(hint.Key)
			desc := s.KeyDesc.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return s.LegendBox.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView() string {
	s := m.styles()
	lines := []string{
		s.SectionHeader.Render("Command Palette"),
		s.Helper.Render("• drag a file onto the terminal, type its path, or press Ctrl+O to browse; files in the watched inbox are picked up too."),
		s.Helper.Render("• the progress bar is an estimate; the backend answers once, when the analysis is done."),
		s.Helper.Render("• use [ and ] to jump between sections, and g / G to fly to the top or bottom."),
		s.Helper.Render("• / opens search, n / N cycles matches, and Esc clears it."),
		s.Helper.Render("• d saves the PDF report, e saves the raw analysis as JSON, both into the output folder."),
		s.Helper.Render("• Ctrl+T switches between the dark and light themes, r starts over, Ctrl+C quits."),
	}
	return s.HelpBox.Render(strings.Join(lines, "\n"))
}

func (m *model) wrapWidth() int {
	width := m.layout.viewportWidth
	if width < minViewportWidth {
		width = minViewportWidth
	}
	return width - 4
}

func renderLogo(s *theme.Styles) string {
	if len(logoArtLines) == 0 {
		return ""
	}
	faceStyle := lipgloss.NewStyle().Foreground(s.Palette.Accent).Bold(true)
	shadowStyle := lipgloss.NewStyle().Foreground(s.Palette.Muted)

	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width += 1 // allow horizontal shadow shift
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// draw shadow first (offset down/right)
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			if y+1 < height && x+1 < width {
				grid[y+1][x+1] = cell{r: r, style: shadowStyle}
			}
		}
	}

	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: faceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}
