package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/csheth/paperlens/internal/archive"
	"github.com/csheth/paperlens/internal/report"
)

func TestAnalyzeJobForwardsUploadSamples(t *testing.T) {
	client := &fakeAnalyzer{result: fixtureResult(t)}
	samples := make(chan uploadSampleMsg, 1)

	msg, err := analyzeJob(client, 7, "/tmp/paper.pdf", samples)(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done, ok := msg.(analysisDoneMsg)
	if !ok {
		t.Fatalf("expected analysisDoneMsg, got %T", msg)
	}
	if done.gen != 7 || done.result == nil {
		t.Fatalf("unexpected payload: %#v", done)
	}
	select {
	case sample := <-samples:
		if sample.gen != 7 || sample.sent != 50 || sample.total != 100 {
			t.Fatalf("unexpected sample: %#v", sample)
		}
	default:
		t.Fatal("expected an upload sample")
	}
}

func TestAnalyzeJobNeverBlocksOnSamples(t *testing.T) {
	client := &fakeAnalyzer{result: fixtureResult(t)}
	// unbuffered and never read
	samples := make(chan uploadSampleMsg)

	if _, err := analyzeJob(client, 1, "/tmp/paper.pdf", samples)(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected one upload, got %d", client.calls)
	}
}

func TestAnalyzeJobWithoutClient(t *testing.T) {
	msg, err := analyzeJob(nil, 1, "/tmp/paper.pdf", nil)(context.Background())
	if err == nil {
		t.Fatal("expected error without a client")
	}
	if done := msg.(analysisDoneMsg); done.err == nil {
		t.Fatal("payload should carry the error")
	}
}

func TestReportJobPassesThroughExporter(t *testing.T) {
	exporter := &fakeExporter{saved: report.Saved{Path: "/out/analysis_report_a.pdf", Bytes: 10}}
	msg, err := reportJob(exporter, fixtureResult(t), "a.pdf")(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := msg.(reportDoneMsg)
	if done.saved.Path != "/out/analysis_report_a.pdf" || done.upload != "a.pdf" {
		t.Fatalf("unexpected payload: %#v", done)
	}

	exporter.err = report.ErrEmptyReport
	msg, err = reportJob(exporter, fixtureResult(t), "a.pdf")(context.Background())
	if !errors.Is(err, report.ErrEmptyReport) {
		t.Fatalf("expected empty report error, got %v", err)
	}
	if done := msg.(reportDoneMsg); !errors.Is(done.err, report.ErrEmptyReport) {
		t.Fatalf("payload should carry the error, got %v", done.err)
	}
}

func TestExportJobWritesArchive(t *testing.T) {
	dir := t.TempDir()
	msg, err := exportJob(dir, "quarks.txt", fixtureResult(t))(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := msg.(exportDoneMsg)
	if filepath.Base(done.path) != archive.FileName("quarks.txt") {
		t.Fatalf("unexpected path %q", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatalf("archive missing: %v", err)
	}
}

func TestWaitForInboxStopsOnClose(t *testing.T) {
	if cmd := waitForInbox(nil); cmd != nil {
		t.Fatal("nil inbox should not schedule a listener")
	}
	events := make(chan string, 1)
	events <- "/tmp/a.pdf"
	close(events)
	cmd := waitForInbox(events)
	if msg, ok := cmd().(inboxFileMsg); !ok || msg.path != "/tmp/a.pdf" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("closed inbox should yield nil, got %#v", msg)
	}
}

func TestHealthCmd(t *testing.T) {
	if cmd := healthCmd(nil); cmd != nil {
		t.Fatal("no checker means no probe")
	}
	cmd := healthCmd(healthFunc(func(context.Context) error { return errors.New("down") }))
	msg, ok := cmd().(healthMsg)
	if !ok || msg.err == nil {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestJobBusIDsIncrease(t *testing.T) {
	bus := newJobBus()
	first := bus.nextID(jobKindAnalyze)
	second := bus.nextID(jobKindReport)
	if first != "analyze-1" || second != "report-2" {
		t.Fatalf("unexpected ids %q %q", first, second)
	}
	if cmd := bus.Start(context.Background(), jobKindExport, exportJob(t.TempDir(), "a.txt", fixtureResult(t))); cmd == nil {
		t.Fatal("start should return a command")
	}
}
