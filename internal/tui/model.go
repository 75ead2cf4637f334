package tui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/intake"
	"github.com/csheth/paperlens/internal/progress"
	"github.com/csheth/paperlens/internal/report"
	"github.com/csheth/paperlens/internal/results"
	"github.com/csheth/paperlens/internal/theme"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Analyzer Analyzer
	Reports  ReportExporter
	Health   HealthChecker
	Theme    *theme.Provider
	Progress ProgressSettings

	// OutputDir receives JSON exports. PDF reports go wherever Reports saves them.
	OutputDir string
	// StartDir is where the file browser opens.
	StartDir string
	// Inbox delivers paths dropped into the watched folder.
	Inbox    <-chan string
	InboxDir string
	// Backend is shown next to the health badge.
	Backend string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Theme == nil {
		config.Theme = theme.NewProvider(theme.Dark)
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.StartDir == "" {
		config.StartDir = "."
	}

	layout := newPageLayout()

	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.Prompt = "› "
	composer.CharLimit = 1024
	composer.Width = 70
	composer.Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = searchPlaceholder
	searchInput.CharLimit = 120
	searchInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(layout.viewportWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	picker := filepicker.New()
	picker.CurrentDirectory = config.StartDir
	picker.AllowedTypes = []string{".pdf", ".docx", ".txt"}
	picker.AutoHeight = false
	picker.Height = layout.pickerHeight

	sim := progress.New(config.Progress.Step, config.Progress.Ceiling, config.Progress.Interval)

	return &model{
		config:         config,
		stage:          stageIntake,
		jobs:           newJobBus(),
		layout:         layout,
		composer:       composer,
		searchInput:    searchInput,
		spinner:        spin,
		viewport:       vp,
		picker:         picker,
		bar:            newBar(config.Theme.Styles(), layout.barWidth),
		simulator:      sim,
		uploads:        make(chan uploadSampleMsg, uploadBuffer),
		showFeatures:   true,
		searchMatchIdx: -1,
		viewportDirty:  true,
		sectionAnchors: map[string]int{},
		sectionTitles:  map[string]string{},
		infoMessage:    "Drop a paper onto the terminal, type its path, or press Ctrl+O to browse.",
	}
}

type model struct {
	config Config
	stage  stage
	jobs   *jobBus
	layout pageLayout

	composer    textinput.Model
	searchInput textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model
	picker      filepicker.Model
	bar         bar.Model

	file           *intake.Candidate
	result         *analysis.Result
	errorMessage   string
	infoMessage    string
	loading        bool
	downloading    bool
	showFeatures   bool
	generation     int
	simulator      *progress.Simulator
	cancelAnalysis context.CancelFunc
	uploads        chan uploadSampleMsg
	healthKnown    bool
	backendErr     error
	lastJob        jobSnapshot

	alertMessage string
	alertReturn  stage

	viewportContent string
	viewportDirty   bool
	lineCount       int
	cursorLine      int
	sectionAnchors  map[string]int
	sectionTitles   map[string]string
	searchQuery     string
	searchMatches   []matchRange
	searchMatchIdx  int
	helpVisible     bool
}

func newBar(s *theme.Styles, width int) bar.Model {
	b := bar.New(bar.WithGradient(s.Palette.BarStart, s.Palette.BarEnd), bar.WithoutPercentage())
	b.Width = width
	return b
}

func (m *model) styles() *theme.Styles {
	return m.config.Theme.Styles()
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		healthCmd(m.config.Health),
		waitForUpload(m.uploads),
		waitForInbox(m.config.Inbox),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.picker.Height = m.layout.pickerHeight
		m.bar.Width = m.layout.barWidth
		composerWidth := m.layout.viewportWidth - 12
		if composerWidth > 90 {
			composerWidth = 90
		}
		m.composer.Width = composerWidth
		m.markViewportDirty()
		return m, nil
	case spinner.TickMsg:
		if m.loading || m.downloading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.stage == stageResults {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			m.cursorLine = m.viewport.YOffset
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case uploadSampleMsg:
		if msg.gen == m.generation && m.loading {
			m.simulator.Observe(msg.sent, msg.total)
		}
		return m, waitForUpload(m.uploads)
	case progressTickMsg:
		if msg.gen != m.generation || !m.loading {
			return m, nil
		}
		if !m.simulator.Advance() {
			return m, nil
		}
		return m, tickCmd(msg.gen, m.simulator.Interval)
	case reportDoneMsg:
		m.downloading = false
		if msg.err != nil {
			m.showAlert(report.FailureMessage(msg.err))
			return m, nil
		}
		m.infoMessage = fmt.Sprintf("Saved PDF report to %s", msg.saved.Path)
		if msg.saved.Pages > 0 {
			m.infoMessage += fmt.Sprintf(" (%d pages)", msg.saved.Pages)
		}
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Failed to export analysis: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Saved analysis JSON to %s", msg.path)
		return m, nil
	case healthMsg:
		m.healthKnown = true
		m.backendErr = msg.err
		return m, nil
	case inboxFileMsg:
		next := waitForInbox(m.config.Inbox)
		name := filepath.Base(msg.path)
		if m.loading || m.stage == stageAlert || m.stage == stageSearch || m.stage == stagePicker {
			m.infoMessage = fmt.Sprintf("Busy; ignored %s from the inbox.", name)
			return m, next
		}
		log.Printf("[inbox] selecting %s", msg.path)
		m.selectPath(msg.path)
		return m, next
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	if m.composer.Focused() {
		m.composer, cmd = m.composer.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlT:
		m.toggleTheme()
		return m, nil
	}
	switch m.stage {
	case stageIntake:
		return m.handleIntakeKey(key)
	case stagePicker:
		return m.handlePickerKey(key)
	case stageLoading:
		return m.handleLoadingKey(key)
	case stageResults:
		return m.handleResultsKey(key)
	case stageSearch:
		return m.handleSearchKey(key)
	case stageAlert:
		return m.handleAlertKey(key)
	default:
		return m, nil
	}
}

func (m *model) handleIntakeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composer.Focused() {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.composer.Value())
			if value == "" {
				if m.file != nil {
					return m, m.startAnalysis()
				}
				m.infoMessage = "Type or drop a file path first."
				return m, nil
			}
			m.selectPath(value)
			return m, nil
		case tea.KeyEsc:
			if strings.TrimSpace(m.composer.Value()) != "" {
				m.composer.SetValue("")
				return m, nil
			}
			if m.file != nil {
				m.composer.Blur()
				return m, nil
			}
			return m, tea.Quit
		case tea.KeyTab:
			m.composer.Blur()
			return m, nil
		case tea.KeyCtrlO:
			return m, m.openPicker()
		}
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(key)
		return m, cmd
	}

	// A drop onto the terminal arrives as one burst of runes.
	if key.Type == tea.KeyRunes && len(key.Runes) > 1 {
		m.selectPath(string(key.Runes))
		return m, nil
	}
	switch key.String() {
	case "enter", "a":
		return m, m.startAnalysis()
	case "tab", "i":
		return m, m.composer.Focus()
	case "o", "ctrl+o":
		return m, m.openPicker()
	case "t":
		m.toggleTheme()
	case "r", "esc":
		return m, m.reset()
	case "?":
		m.toggleHelp()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) handlePickerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEsc {
		m.stage = stageIntake
		m.infoMessage = "File browser closed."
		if m.file == nil {
			return m, m.composer.Focus()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(key)
	if ok, path := m.picker.DidSelectFile(key); ok {
		m.selectPath(path)
		return m, cmd
	}
	// Disabled entries still go through validation so the user sees why.
	if ok, path := m.picker.DidSelectDisabledFile(key); ok {
		m.selectPath(path)
		return m, cmd
	}
	return m, cmd
}

func (m *model) handleLoadingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "r", "esc":
		cmd := m.reset()
		m.infoMessage = "Analysis cancelled."
		return m, cmd
	case "t":
		m.toggleTheme()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) handleResultsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled := true
	switch key.String() {
	case "d":
		return m, m.requestReport()
	case "e":
		return m, m.requestExport()
	case "a":
		return m, m.startAnalysis()
	case "esc":
		if m.searchQuery != "" {
			m.clearSearch()
			m.infoMessage = "Cleared search filter."
			return m, nil
		}
		return m, m.reset()
	case "r":
		return m, m.reset()
	case "t":
		m.toggleTheme()
	case "/":
		m.stage = stageSearch
		m.searchInput.SetValue(m.searchQuery)
		return m, m.searchInput.Focus()
	case "n":
		m.advanceSearch(1)
	case "N":
		m.advanceSearch(-1)
	case "g", "home":
		m.scrollToTop()
	case "G", "end":
		m.scrollToBottom()
	case "]":
		m.jumpToRelativeSection(1)
	case "[":
		m.jumpToRelativeSection(-1)
	case "?":
		m.toggleHelp()
	case "q":
		return m, tea.Quit
	default:
		handled = false
	}
	if handled {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	m.cursorLine = m.viewport.YOffset
	return m, cmd
}

func (m *model) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.stage = stageResults
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.stage = stageResults
		m.applySearch(m.searchInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(key)
	return m, cmd
}

func (m *model) handleAlertKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter", "esc", " ", "q":
		m.stage = m.alertReturn
		m.alertMessage = ""
	}
	return m, nil
}

// selectPath runs a user-provided path through inspection and validation. On failure
// the current file and result stay as they were.
func (m *model) selectPath(raw string) bool {
	path := intake.NormalizeDroppedPath(raw)
	candidate, err := intake.Inspect(path)
	if err == nil {
		err = intake.Validate(candidate)
	}
	if err != nil {
		log.Printf("[intake] rejected %q: %v", path, err)
		m.errorMessage = err.Error()
		if m.stage == stagePicker {
			m.stage = stageIntake
		}
		return false
	}
	candidate = intake.Enrich(candidate)
	m.file = &candidate
	m.result = nil
	m.errorMessage = ""
	m.showFeatures = false
	m.stage = stageIntake
	m.composer.SetValue("")
	m.composer.Blur()
	m.clearSearch()
	m.markViewportDirty()
	m.infoMessage = fmt.Sprintf("Ready to analyze %s. Press Enter or a to start.", candidate.Name)
	return true
}

func (m *model) openPicker() tea.Cmd {
	m.stage = stagePicker
	m.composer.Blur()
	m.infoMessage = "Pick a PDF, DOCX or TXT file. Esc closes the browser."
	return m.picker.Init()
}

func (m *model) startAnalysis() tea.Cmd {
	if m.file == nil {
		m.infoMessage = "Select a file before analyzing."
		return nil
	}
	if m.loading {
		return nil
	}
	m.releaseAnalysis()
	m.generation++
	gen := m.generation
	m.loading = true
	m.errorMessage = ""
	m.infoMessage = ""
	m.result = nil
	m.simulator.Reset()
	m.clearSearch()
	m.stage = stageLoading
	m.composer.Blur()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelAnalysis = cancel
	log.Printf("[analysis] start %s (generation=%d)", m.file.Name, gen)
	return tea.Batch(
		m.jobs.Start(ctx, jobKindAnalyze, analyzeJob(m.config.Analyzer, gen, m.file.Path, m.uploads)),
		tickCmd(gen, m.simulator.Interval),
		m.spinner.Tick,
	)
}

func (m *model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.generation {
		log.Printf("[analysis] dropped stale response (generation=%d, current=%d)", msg.gen, m.generation)
		return m, nil
	}
	m.loading = false
	m.releaseAnalysis()
	if msg.err != nil {
		m.simulator.Reset()
		m.errorMessage = analysis.AnalysisMessage(msg.err)
		m.infoMessage = "Press Enter or a to retry, r to pick another file."
		m.transition(stageIntake)
		return m, nil
	}
	m.simulator.Settle()
	m.result = msg.result
	m.errorMessage = ""
	m.cursorLine = 0
	m.viewport.SetYOffset(0)
	m.markViewportDirty()
	if m.result == nil || m.result.Empty() {
		m.infoMessage = "The backend returned no analysis sections."
	} else {
		m.infoMessage = fmt.Sprintf("Analysis complete in %.2fs. Press d for the PDF report, e to export JSON.", m.result.ProcessingTime)
	}
	m.transition(stageResults)
	return m, nil
}

func (m *model) releaseAnalysis() {
	if m.cancelAnalysis != nil {
		m.cancelAnalysis()
		m.cancelAnalysis = nil
	}
}

// transition moves to next, or queues it behind an open alert.
func (m *model) transition(next stage) {
	if m.stage == stageAlert {
		m.alertReturn = next
		return
	}
	m.stage = next
}

func (m *model) showAlert(message string) {
	if m.stage != stageAlert {
		m.alertReturn = m.stage
		if m.alertReturn == stageSearch {
			m.alertReturn = stageResults
		}
	}
	m.alertMessage = message
	m.stage = stageAlert
}

// reset returns to the empty intake screen. Bumping the generation makes any
// in-flight analysis response stale.
func (m *model) reset() tea.Cmd {
	m.generation++
	m.releaseAnalysis()
	m.file = nil
	m.result = nil
	m.errorMessage = ""
	m.loading = false
	m.simulator.Reset()
	m.showFeatures = true
	m.stage = stageIntake
	m.clearSearch()
	m.viewport.SetContent("")
	m.viewport.SetYOffset(0)
	m.viewportContent = ""
	m.lineCount = 0
	m.cursorLine = 0
	m.sectionAnchors = map[string]int{}
	m.sectionTitles = map[string]string{}
	m.composer.SetValue("")
	m.infoMessage = "Ready for another paper."
	return m.composer.Focus()
}

func (m *model) toggleTheme() {
	mode := m.config.Theme.Toggle()
	m.bar = newBar(m.styles(), m.layout.barWidth)
	m.markViewportDirty()
	m.infoMessage = fmt.Sprintf("Switched to the %s theme.", mode)
}

func (m *model) toggleHelp() {
	m.helpVisible = !m.helpVisible
	if m.helpVisible {
		m.infoMessage = "Help overlay open. Press ? to hide."
	} else {
		m.infoMessage = "Help overlay hidden."
	}
}

func (m *model) uploadName() string {
	if m.file != nil {
		return m.file.Name
	}
	if m.result != nil {
		return m.result.Filename
	}
	return ""
}

func (m *model) requestReport() tea.Cmd {
	if m.result == nil {
		m.infoMessage = "Analyze a paper before downloading its report."
		return nil
	}
	if m.downloading {
		m.infoMessage = "A report download is already running."
		return nil
	}
	m.downloading = true
	m.infoMessage = "Generating PDF report…"
	return tea.Batch(
		m.jobs.Start(context.Background(), jobKindReport, reportJob(m.config.Reports, m.result, m.uploadName())),
		m.spinner.Tick,
	)
}

func (m *model) requestExport() tea.Cmd {
	if m.result == nil {
		m.infoMessage = "Analyze a paper before exporting it."
		return nil
	}
	return m.jobs.Start(context.Background(), jobKindExport, exportJob(m.config.OutputDir, m.uploadName(), m.result))
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

// refreshViewport re-renders the result. While a search is active the plain
// rendering is used so match offsets never land inside escape sequences.
func (m *model) refreshViewport() {
	m.viewportDirty = false
	prevYOffset := m.viewport.YOffset
	if m.result == nil {
		m.viewportContent = ""
		m.viewport.SetContent("")
		m.sectionAnchors = map[string]int{}
		m.sectionTitles = map[string]string{}
		m.lineCount = 0
		return
	}
	styles := m.styles()
	renderStyles := styles
	if m.searchQuery != "" {
		renderStyles = theme.Plain()
	}
	view := results.Render(m.result, renderStyles, m.viewport.Width)
	if view.Content == "" {
		view.Content = renderStyles.Helper.Render("The backend returned no analysis sections.")
	}
	m.viewportContent = view.Content
	m.sectionAnchors = make(map[string]int, len(view.Anchors))
	m.sectionTitles = make(map[string]string, len(view.Anchors))
	for _, anchor := range view.Anchors {
		m.sectionAnchors[anchor.Key] = anchor.Line
		m.sectionTitles[anchor.Key] = anchor.Title
	}
	m.lineCount = len(splitLinesPreserve(view.Content))

	content := view.Content
	if m.searchQuery != "" {
		m.searchMatches = findMatches(content, m.searchQuery)
		if len(m.searchMatches) == 0 {
			m.searchMatchIdx = -1
		} else if m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
			m.searchMatchIdx = 0
		}
		content = highlightMatches(content, m.searchMatches, m.searchMatchIdx, styles)
	} else {
		m.searchMatches = nil
		m.searchMatchIdx = -1
	}
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(m.clampYOffset(prevYOffset))
	if m.searchQuery != "" && len(m.searchMatches) > 0 && m.searchMatchIdx >= 0 {
		m.scrollToCurrentMatch()
	}
}

func (m *model) jumpToRelativeSection(delta int) {
	m.refreshViewportIfDirty()
	anchors := m.availableSections()
	if len(anchors) == 0 {
		m.infoMessage = "No sections available yet."
		return
	}
	currentLine := m.cursorLine
	if delta > 0 {
		for _, anchor := range anchors {
			if m.sectionAnchors[anchor] > currentLine {
				m.jumpToSection(anchor)
				return
			}
		}
		m.infoMessage = "Already at the last section."
		return
	}
	if delta < 0 {
		for i := len(anchors) - 1; i >= 0; i-- {
			anchor := anchors[i]
			if m.sectionAnchors[anchor] < currentLine {
				m.jumpToSection(anchor)
				return
			}
		}
		m.infoMessage = "Already at the first section."
	}
}

func (m *model) availableSections() []string {
	if len(m.sectionAnchors) == 0 {
		return nil
	}
	var ordered []string
	for _, anchor := range sectionSequence {
		if _, ok := m.sectionAnchors[anchor]; ok {
			ordered = append(ordered, anchor)
		}
	}
	return ordered
}

func (m *model) jumpToSection(anchor string) {
	line, ok := m.sectionAnchors[anchor]
	if !ok {
		m.infoMessage = "Section unavailable."
		return
	}
	if line < 0 {
		line = 0
	}
	m.viewport.SetYOffset(m.clampYOffset(line))
	m.cursorLine = line
	title := m.sectionTitles[anchor]
	if title == "" {
		title = "section"
	}
	m.infoMessage = fmt.Sprintf("Jumped to %s.", title)
}

func (m *model) scrollToTop() {
	m.viewport.GotoTop()
	m.cursorLine = 0
	m.infoMessage = "Jumped to top."
}

func (m *model) scrollToBottom() {
	m.viewport.SetYOffset(m.clampYOffset(m.lineCount))
	if m.lineCount > 0 {
		m.cursorLine = m.lineCount - 1
	}
	m.infoMessage = "Jumped to bottom."
}

func (m *model) applySearch(query string) {
	query = strings.TrimSpace(query)
	m.searchInput.Blur()
	m.searchQuery = query
	if query == "" {
		m.searchMatches = nil
		m.searchMatchIdx = -1
		m.searchInput.SetValue("")
	} else {
		m.searchMatchIdx = 0
	}
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	if query == "" {
		m.infoMessage = "Cleared search filter."
	} else if len(m.searchMatches) == 0 {
		m.infoMessage = fmt.Sprintf("No matches for %q.", query)
	} else {
		m.infoMessage = fmt.Sprintf("Search ready for %q.", query)
	}
}

func (m *model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchMatchIdx = -1
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.markViewportDirty()
}

func (m *model) advanceSearch(delta int) {
	if m.searchQuery == "" {
		m.infoMessage = "Start a search with / first."
		return
	}
	if len(m.searchMatches) == 0 {
		m.infoMessage = fmt.Sprintf("No matches for %q.", m.searchQuery)
		return
	}
	count := len(m.searchMatches)
	m.searchMatchIdx = (m.searchMatchIdx + delta) % count
	if m.searchMatchIdx < 0 {
		m.searchMatchIdx += count
	}
	m.infoMessage = fmt.Sprintf("Match %d/%d for %q.", m.searchMatchIdx+1, count, m.searchQuery)
	m.markViewportDirty()
	m.refreshViewportIfDirty()
}

func (m *model) scrollToCurrentMatch() {
	if len(m.searchMatches) == 0 || m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
		return
	}
	match := m.searchMatches[m.searchMatchIdx]
	line := lineNumberAtOffset(m.viewportContent, match.start)
	target := line - 1
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(m.clampYOffset(target))
	m.cursorLine = line
}

func (m *model) searchStatusLine() string {
	if m.searchQuery == "" {
		return ""
	}
	if len(m.searchMatches) == 0 {
		return fmt.Sprintf("Search %q: no matches", m.searchQuery)
	}
	return fmt.Sprintf("Search %q: match %d/%d", m.searchQuery, m.searchMatchIdx+1, len(m.searchMatches))
}

func (m *model) clampYOffset(offset int) int {
	maxOffset := m.lineCount - m.viewport.Height
	if m.viewport.Height <= 0 {
		maxOffset = m.lineCount - 1
	}
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
