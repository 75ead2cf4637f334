// Package formatter turns an analysis result into headless output for the CLI.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/results"
	"github.com/csheth/paperlens/internal/theme"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *analysis.Result) ([]byte, error)
}

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "yaml", "markdown"}

// New returns the formatter registered under name.
func New(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return &textFormatter{width: 100}, nil
	case "json":
		return &jsonFormatter{}, nil
	case "yaml", "yml":
		return &yamlFormatter{}, nil
	case "markdown", "md":
		return &markdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

type jsonFormatter struct{}

// Format indents the payload exactly as the backend returned it.
func (f *jsonFormatter) Format(result *analysis.Result) ([]byte, error) {
	raw, err := result.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

type yamlFormatter struct{}

// Format re-encodes the raw payload as YAML, keeping the backend's field names.
func (f *yamlFormatter) Format(result *analysis.Result) ([]byte, error) {
	raw, err := result.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to convert result: %w", err)
	}
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type textFormatter struct {
	width int
}

func (f *textFormatter) Format(result *analysis.Result) ([]byte, error) {
	view := results.Render(result, theme.Plain(), f.width)
	if view.Content == "" {
		return []byte("The backend returned no analysis sections.\n"), nil
	}
	return []byte(view.Content + "\n"), nil
}
