package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/paperlens/internal/intake"
)

func TestIntakeViewShowsDropZoneAndShowcase(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Drop a paper here", "What PaperLens extracts", "Quality score", "PDF, DOCX or TXT up to 50MB"} {
		if !strings.Contains(view, want) {
			t.Fatalf("intake view missing %q:\n%s", want, view)
		}
	}

	path := writeFile(t, "paper.txt", "body")
	m.selectPath(path)
	view = m.View()
	if strings.Contains(view, "What PaperLens extracts") {
		t.Fatal("showcase should hide after a file is selected")
	}
	if !strings.Contains(view, "Selected file") || !strings.Contains(view, "paper.txt") {
		t.Fatalf("file card missing:\n%s", view)
	}
}

func TestIntakeViewShowsValidationError(t *testing.T) {
	m := newTestModel(t)
	m.selectPath(writeFile(t, "slides.pptx", "x"))
	if view := m.View(); !strings.Contains(view, intake.MessageUnsupportedType) {
		t.Fatalf("error missing:\n%s", view)
	}
}

func TestLoadingViewLabelsEstimate(t *testing.T) {
	m := newTestModel(t)
	m.file = &intake.Candidate{Path: "/tmp/a.pdf", Name: "a.pdf", Ext: "pdf"}
	m.startAnalysis()
	m.Update(progressTickMsg{gen: m.generation})

	view := m.View()
	for _, want := range []string{"Analyzing", "a.pdf", "10%", "estimated"} {
		if !strings.Contains(view, want) {
			t.Fatalf("loading view missing %q:\n%s", want, view)
		}
	}
}

func TestResultsViewRendersSections(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	withResult(t, m)
	m.viewport.Height = 60

	view := m.View()
	for _, want := range []string{"Topic Classification", "Physics", "Theme dark", "Quality 64.0"} {
		if !strings.Contains(view, want) {
			t.Fatalf("results view missing %q:\n%s", want, view)
		}
	}
}

func TestWideWindowShowsLogo(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if view := m.View(); !strings.Contains(view, "██████╗") {
		t.Fatal("wide windows should render the logo")
	}
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	if view := m.View(); strings.Contains(view, "██████╗") || !strings.Contains(view, "PaperLens") {
		t.Fatal("narrow windows should render the compact title")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	withResult(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !strings.Contains(m.View(), "Navigation Cheatsheet") {
		t.Fatal("help should show the legend")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if strings.Contains(m.View(), "Navigation Cheatsheet") {
		t.Fatal("legend should hide again")
	}
}
