package tui

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/archive"
	"github.com/csheth/paperlens/internal/report"
)

const healthTimeout = 5 * time.Second

type analysisDoneMsg struct {
	gen    int
	result *analysis.Result
	err    error
}

type uploadSampleMsg struct {
	gen   int
	sent  int64
	total int64
}

type progressTickMsg struct {
	gen int
}

type reportDoneMsg struct {
	upload string
	saved  report.Saved
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type healthMsg struct {
	err error
}

type inboxFileMsg struct {
	path string
}

func analyzeJob(client Analyzer, gen int, path string, samples chan<- uploadSampleMsg) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if client == nil {
			err := errors.New("no analysis backend configured")
			return analysisDoneMsg{gen: gen, err: err}, err
		}
		onUpload := func(sent, total int64) {
			select {
			case samples <- uploadSampleMsg{gen: gen, sent: sent, total: total}:
			default:
			}
		}
		result, err := client.Analyze(ctx, path, onUpload)
		return analysisDoneMsg{gen: gen, result: result, err: err}, err
	}
}

func reportJob(exporter ReportExporter, result *analysis.Result, upload string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if exporter == nil {
			err := errors.New("no report exporter configured")
			return reportDoneMsg{upload: upload, err: err}, err
		}
		saved, err := exporter.Export(ctx, result, upload)
		return reportDoneMsg{upload: upload, saved: saved, err: err}, err
	}
}

func exportJob(dir, upload string, result *analysis.Result) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		path, err := archive.Save(dir, upload, result)
		return exportDoneMsg{path: path, err: err}, err
	}
}

func healthCmd(checker HealthChecker) tea.Cmd {
	if checker == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		err := checker.Health(ctx)
		if err != nil {
			log.Printf("[analysis] health check failed: %v", err)
		}
		return healthMsg{err: err}
	}
}

func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return progressTickMsg{gen: gen}
	})
}

func waitForUpload(samples <-chan uploadSampleMsg) tea.Cmd {
	return func() tea.Msg {
		sample, ok := <-samples
		if !ok {
			return nil
		}
		return sample
	}
}

func waitForInbox(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return inboxFileMsg{path: path}
	}
}
