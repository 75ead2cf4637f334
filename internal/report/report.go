// Package report downloads the backend-generated PDF for an analysis and saves it locally.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/csheth/paperlens/internal/analysis"
)

const (
	filePrefix    = "analysis_report_"
	partialSuffix = ".part"
	maxSuffix     = 999
)

// ErrEmptyReport is returned when the backend sends a zero-length report.
var ErrEmptyReport = analysis.ErrEmptyReport

// Downloader fetches report bytes for a result.
type Downloader interface {
	DownloadReport(ctx context.Context, result *analysis.Result) ([]byte, error)
}

// Saved describes a report written to disk.
type Saved struct {
	Path  string
	Bytes int
	Pages int
}

// FileName derives the suggested report name from the uploaded file name.
func FileName(uploadName string) string {
	return filePrefix + Basename(uploadName) + ".pdf"
}

// Basename strips the final extension and any directory separators from name.
func Basename(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	name = strings.NewReplacer("/", "-", `\`, "-", ":", "-").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "document"
	}
	return name
}

// Saver writes files into Dir without ever replacing an existing one.
type Saver struct {
	Dir string
}

// Save stores data under name, or under "name (n).ext" when name is taken, and
// returns the final path. The write goes through a temporary file so readers never
// see a partial report.
func (s Saver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+"-*"+partialSuffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; n <= maxSuffix; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		target := filepath.Join(dir, candidate)
		// Link fails when target exists, which makes the claim atomic.
		err := os.Link(tmpPath, target)
		if err == nil {
			return target, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if _, statErr := os.Lstat(target); statErr == nil {
			continue
		}
		if err := os.Rename(tmpPath, target); err != nil {
			return "", fmt.Errorf("failed to save %s: %w", candidate, err)
		}
		return target, nil
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// Exporter downloads a report once and saves it once.
type Exporter struct {
	Client Downloader
	Saver  Saver
}

// Export fetches the report for result and writes it next to other reports. Nothing
// is written when the download fails or the body is empty.
func (e Exporter) Export(ctx context.Context, result *analysis.Result, uploadName string) (Saved, error) {
	if e.Client == nil {
		return Saved{}, errors.New("no report client configured")
	}
	data, err := e.Client.DownloadReport(ctx, result)
	if err != nil {
		return Saved{}, err
	}
	if len(data) == 0 {
		return Saved{}, ErrEmptyReport
	}
	path, err := e.Saver.Save(FileName(uploadName), data)
	if err != nil {
		return Saved{}, err
	}
	pages, _ := CountPages(data)
	log.Printf("[report] saved %s (%d bytes, %d pages)", path, len(data), pages)
	return Saved{Path: path, Bytes: len(data), Pages: pages}, nil
}

// CountPages reads the page count from in-memory PDF bytes.
func CountPages(data []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("failed to read pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// FailureMessage is the alert text for a failed export.
func FailureMessage(err error) string {
	if errors.Is(err, ErrEmptyReport) {
		return "Failed to generate PDF report: received an empty file"
	}
	reason := analysis.DetailOf(err)
	if reason == "" && err != nil {
		reason = err.Error()
	}
	return "Failed to generate PDF report: " + reason
}
