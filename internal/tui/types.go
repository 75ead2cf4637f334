package tui

import (
	"context"
	"time"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/report"
	"github.com/csheth/paperlens/internal/results"
)

type stage int

const (
	stageIntake stage = iota
	stagePicker
	stageLoading
	stageResults
	stageSearch
	stageAlert
)

func (s stage) String() string {
	switch s {
	case stageIntake:
		return "intake"
	case stagePicker:
		return "picker"
	case stageLoading:
		return "loading"
	case stageResults:
		return "results"
	case stageSearch:
		return "search"
	case stageAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// sectionSequence is the order [ and ] walk through. Sections the backend did not
// return are skipped.
var sectionSequence = []string{
	results.AnchorOverview,
	results.AnchorTopic,
	results.AnchorMethodology,
	results.AnchorSentiment,
	results.AnchorContribution,
	results.AnchorSections,
	results.AnchorKeywords,
	results.AnchorEntities,
	results.AnchorSummary,
	results.AnchorReadability,
	results.AnchorCitations,
	results.AnchorQuestions,
	results.AnchorQuality,
}

const heroTagline = "Read research papers through the analysis backend."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	logoMinWindowWidth        = 90
	uploadBuffer              = 16
)

const (
	composerPlaceholder = "Drop a file here or type a path, then press Enter…"
	searchPlaceholder   = "Search the analysis…"
)

// Analyzer uploads a paper and waits for the structured analysis.
type Analyzer interface {
	Analyze(ctx context.Context, path string, onUpload analysis.UploadFunc) (*analysis.Result, error)
}

// ReportExporter downloads and stores the PDF report for a result.
type ReportExporter interface {
	Export(ctx context.Context, result *analysis.Result, uploadName string) (report.Saved, error)
}

// HealthChecker probes the backend once at startup.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ProgressSettings tunes the estimated progress bar.
type ProgressSettings struct {
	Step     int
	Ceiling  int
	Interval time.Duration
}
