// Package intake turns user-provided paths into validated upload candidates.
package intake

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest file the backend accepts (50 MB).
const MaxUploadBytes int64 = 50 * 1024 * 1024

// AllowedExtensions lists the accepted extensions without their leading dot.
var AllowedExtensions = []string{"pdf", "docx", "txt"}

const (
	MessageUnsupportedType = "Please upload a PDF, DOCX, or TXT file"
	MessageTooLarge        = "File size must be less than 50MB"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// Kind classifies a validation failure.
type Kind int

const (
	KindType Kind = iota + 1
	KindSize
)

// ValidationError reports why a candidate was rejected. Message is safe to show to users.
type ValidationError struct {
	Kind    Kind
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// Candidate is a file the user picked for analysis.
type Candidate struct {
	Path  string
	Name  string
	Size  int64
	Ext   string
	Pages int
}

// SizeKB reports the candidate size in kilobytes.
func (c Candidate) SizeKB() float64 {
	return float64(c.Size) / 1024
}

// Extension returns the lowercased text after the final dot of name, or "" when name has none.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Validate checks the extension allow-list first, then the size limit.
func Validate(c Candidate) error {
	ext := Extension(c.Name)
	allowed := false
	for _, candidate := range AllowedExtensions {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return &ValidationError{Kind: KindType, Message: MessageUnsupportedType, err: ErrUnsupportedType}
	}
	if c.Size > MaxUploadBytes {
		return &ValidationError{Kind: KindSize, Message: MessageTooLarge, err: ErrTooLarge}
	}
	return nil
}

// Inspect builds a Candidate from a path on disk. It does not validate.
func Inspect(path string) (Candidate, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Candidate{}, errors.New("no file path given")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Candidate{}, fmt.Errorf("file not found: %s", path)
		}
		return Candidate{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}
	name := filepath.Base(abs)
	return Candidate{
		Path: abs,
		Name: name,
		Size: info.Size(),
		Ext:  Extension(name),
	}, nil
}

// NormalizeDroppedPath undoes the quoting terminals apply when a file is dragged onto them.
func NormalizeDroppedPath(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	if strings.HasPrefix(value, "file://") {
		if parsed, err := url.Parse(value); err == nil && parsed.Path != "" {
			value = parsed.Path
		}
	}
	if strings.Contains(value, `\`) && os.PathSeparator == '/' {
		var b strings.Builder
		escaped := false
		for _, r := range value {
			if r == '\\' && !escaped {
				escaped = true
				continue
			}
			escaped = false
			b.WriteRune(r)
		}
		value = b.String()
	}
	return strings.TrimSpace(value)
}
