package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/csheth/paperlens/internal/archive"
	"github.com/csheth/paperlens/internal/intake"
	"github.com/csheth/paperlens/internal/tuitest"
)

const backendFixture = `{
  "status": "success",
  "filename": "quarks.txt",
  "processing_time": 1.2,
  "topic_classification": {"primary_topic": "Physics", "confidence": 80, "secondary_topics": []},
  "quality_score": {"overall_score": 71, "rating": "Good", "component_scores": {}, "strengths": [], "improvements": []}
}`

func TestPaperLensIntakeAcceptsTypedPath(t *testing.T) {
	t.Parallel()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	work := t.TempDir()
	paper := filepath.Join(work, "quarks.txt")
	require.NoError(t, os.WriteFile(paper, []byte("top quark mass"), 0o644))

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--backend", "http://127.0.0.1:1"},
		Dir:     work,
		Env:     []string{"HOME=" + work},
		Width:   100,
		Height:  40,
		Steps: []tuitest.Step{
			{WaitFor: "Drop a paper here", Input: []byte(paper)},
			{Delay: 200 * time.Millisecond, Input: tuitest.KeyEnter},
			{WaitFor: "backend offline"},
			tuitest.Key("Selected file", tuitest.KeyCtrlC),
		},
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	require.NoError(t, err)

	_, ok := rec.FinalFrame()
	require.True(t, ok, "no frames captured")
	require.True(t, rec.Contains("quarks.txt"))
	require.True(t, rec.Contains("backend offline"))
}

func TestAnalyzeHeadlessPrintsJSONAndArchives(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(backendFixture))
	}))
	defer server.Close()

	binary := buildBinary(t, moduleDir(t))
	work := t.TempDir()
	paper := filepath.Join(work, "quarks.txt")
	require.NoError(t, os.WriteFile(paper, []byte("top quark mass"), 0o644))

	stdout, stderr, code := runCLI(t, binary, work,
		"analyze", paper, "--backend", server.URL, "--format", "json", "--save", "--output-dir", work)
	require.Equal(t, 0, code, stderr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	topic := decoded["topic_classification"].(map[string]any)
	require.Equal(t, "Physics", topic["primary_topic"])

	saved, err := archive.Load(filepath.Join(work, archive.FileName("quarks.txt")))
	require.NoError(t, err)
	require.Equal(t, "quarks.txt", saved.Filename)
}

func TestAnalyzeRejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	binary := buildBinary(t, moduleDir(t))
	work := t.TempDir()
	image := filepath.Join(work, "figure.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0o644))

	_, stderr, code := runCLI(t, binary, work, "analyze", image, "--backend", "http://127.0.0.1:1")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, intake.MessageUnsupportedType)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	binary := buildBinary(t, moduleDir(t))
	stdout, _, code := runCLI(t, binary, t.TempDir(), "version")
	require.Equal(t, 0, code)
	require.Equal(t, "paperlens dev\n", stdout)
}

func runCLI(t *testing.T, binary, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		require.True(t, ok, "run %v: %v", args, err)
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "paperlens-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
