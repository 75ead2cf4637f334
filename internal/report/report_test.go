package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/paperlens/internal/analysis"
)

type fakeDownloader struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeDownloader) DownloadReport(ctx context.Context, result *analysis.Result) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"paper.pdf":         "analysis_report_paper.pdf",
		"thesis.final.docx": "analysis_report_thesis.final.pdf",
		"notes":             "analysis_report_notes.pdf",
		"a/b.txt":           "analysis_report_a-b.pdf",
		".pdf":              "analysis_report_.pdf.pdf",
		"":                  "analysis_report_document.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in), "FileName(%q)", in)
	}
}

func TestSaverNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	saver := Saver{Dir: dir}

	first, err := saver.Save("analysis_report_paper.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := saver.Save("analysis_report_paper.pdf", []byte("two"))
	require.NoError(t, err)
	third, err := saver.Save("analysis_report_paper.pdf", []byte("three"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "analysis_report_paper.pdf"), first)
	assert.Equal(t, filepath.Join(dir, "analysis_report_paper (1).pdf"), second)
	assert.Equal(t, filepath.Join(dir, "analysis_report_paper (2).pdf"), third)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "temporary files should be cleaned up")
}

func TestExportSavesOnce(t *testing.T) {
	dir := t.TempDir()
	client := &fakeDownloader{data: []byte("%PDF-1.4 not really")}
	exporter := Exporter{Client: client, Saver: Saver{Dir: dir}}

	saved, err := exporter.Export(context.Background(), &analysis.Result{}, "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, filepath.Join(dir, "analysis_report_paper.pdf"), saved.Path)
	assert.Equal(t, len(client.data), saved.Bytes)
	assert.Equal(t, 0, saved.Pages)
}

func TestExportFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeDownloader
		message string
	}{
		{"empty body", &fakeDownloader{data: []byte{}}, "Failed to generate PDF report: received an empty file"},
		{"empty sentinel", &fakeDownloader{err: analysis.ErrEmptyReport}, "Failed to generate PDF report: received an empty file"},
		{"server error", &fakeDownloader{err: &analysis.APIError{Status: 500, Detail: "boom"}}, "Failed to generate PDF report: boom"},
		{"transport", &fakeDownloader{err: errors.New("connection refused")}, "Failed to generate PDF report: connection refused"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			exporter := Exporter{Client: tt.client, Saver: Saver{Dir: dir}}
			_, err := exporter.Export(context.Background(), &analysis.Result{}, "paper.pdf")
			require.Error(t, err)
			assert.Equal(t, tt.message, FailureMessage(err))
			assert.Equal(t, 1, tt.client.calls, "exactly one attempt")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestCountPagesRejectsGarbage(t *testing.T) {
	_, err := CountPages([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
