package intake

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"paper.pdf", "pdf"},
		{"Paper.PDF", "pdf"},
		{"draft.v2.DocX", "docx"},
		{"notes", ""},
		{"archive.tar.gz", "gz"},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		if got := Extension(tt.in); got != tt.want {
			t.Fatalf("Extension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateRejectsUnsupportedExtensions(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"slides.pptx", "image.png", "paper.pdf.exe", "README", "paper.doc"} {
		err := Validate(Candidate{Name: name, Size: 10})
		if err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType for %q, got %v", name, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Kind != KindType {
			t.Fatalf("expected type validation error for %q, got %#v", name, err)
		}
		if err.Error() != MessageUnsupportedType {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestValidateAcceptsAllowListCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.pdf", "b.PDF", "c.Docx", "d.TXT"} {
		if err := Validate(Candidate{Name: name, Size: MaxUploadBytes}); err != nil {
			t.Fatalf("expected %q to pass, got %v", name, err)
		}
	}
}

func TestValidateRejectsOversizedFiles(t *testing.T) {
	t.Parallel()

	err := Validate(Candidate{Name: "big.pdf", Size: MaxUploadBytes + 1})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if err.Error() != MessageTooLarge {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if MaxUploadBytes != 52428800 {
		t.Fatalf("limit drifted: %d", MaxUploadBytes)
	}
}

func TestValidateChecksTypeBeforeSize(t *testing.T) {
	t.Parallel()

	err := Validate(Candidate{Name: "huge.zip", Size: MaxUploadBytes * 2})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected type error to win, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Sample.TXT")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Inspect(path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if c.Name != "Sample.TXT" || c.Ext != "txt" || c.Size != 11 {
		t.Fatalf("unexpected candidate %+v", c)
	}

	if _, err := Inspect(dir); err == nil {
		t.Fatal("directories should be rejected")
	}
	if _, err := Inspect(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatal("missing files should be rejected")
	}
	if _, err := Inspect("   "); err == nil {
		t.Fatal("blank paths should be rejected")
	}
}

func TestNormalizeDroppedPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/tmp/paper.pdf", "/tmp/paper.pdf"},
		{"single quoted", "'/tmp/my paper.pdf'", "/tmp/my paper.pdf"},
		{"double quoted", "\"/tmp/my paper.pdf\"\n", "/tmp/my paper.pdf"},
		{"escaped spaces", `/tmp/my\ paper.pdf`, "/tmp/my paper.pdf"},
		{"file url", "file:///tmp/my%20paper.pdf", "/tmp/my paper.pdf"},
		{"whitespace", "  /tmp/a.txt  ", "/tmp/a.txt"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeDroppedPath(tt.in); got != tt.want {
				t.Fatalf("NormalizeDroppedPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountPagesRejectsNonPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := CountPages(path); err == nil {
		t.Fatal("expected error for non-pdf content")
	}
	c := Enrich(Candidate{Path: path, Name: "fake.pdf", Ext: "pdf"})
	if c.Pages != 0 {
		t.Fatalf("enrich should leave pages unset, got %d", c.Pages)
	}
}

func TestWatcherEmitsSettledFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, ".hidden.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write hidden: %v", err)
	}
	target := filepath.Join(dir, "dropped.pdf")
	if err := os.WriteFile(target, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events():
		if filepath.Base(got) != "dropped.pdf" {
			t.Fatalf("unexpected event %q", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for inbox event")
	}
}

func TestNewWatcherRejectsFiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewWatcher(path, 0); err == nil {
		t.Fatal("expected error when inbox is a file")
	}
}
