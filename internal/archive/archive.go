// Package archive exports analysis results as JSON files and reads them back.
// Nothing here runs unless the user asks for it.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/report"
)

const filePrefix = "analysis_"

// FileName returns the archive name for an uploaded file.
func FileName(uploadName string) string {
	return filePrefix + report.Basename(uploadName) + ".json"
}

// Save writes the backend payload for result into dir and returns the path. Existing
// archives are kept; a numbered name is chosen instead.
func Save(dir, uploadName string, result *analysis.Result) (string, error) {
	if result == nil {
		return "", errors.New("no analysis result to export")
	}
	raw, err := result.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}
	pretty.WriteByte('\n')
	return report.Saver{Dir: dir}.Save(FileName(uploadName), pretty.Bytes())
}

// Load reads an exported archive back into a result.
func Load(path string) (*analysis.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	result, err := analysis.Decode(bytes.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return result, nil
}
