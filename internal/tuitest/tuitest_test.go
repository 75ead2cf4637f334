package tuitest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[HDrop a paper here\r\n\x1b[2J\x1b[H\x1b[1mAnalyzing\x1b[0m paper.pdf   \r\n\r\n")
	frames := parseFrames(raw)
	require.Len(t, frames, 2)
	require.Equal(t, "Drop a paper here", frames[0].Plain)
	require.Equal(t, "Analyzing paper.pdf", frames[1].Plain)
	require.Equal(t, []string{"Analyzing paper.pdf"}, frames[1].Lines())

	rec := &Recording{Raw: raw, Frames: frames}
	last, ok := rec.FinalFrame()
	require.True(t, ok)
	require.True(t, last.Contains("paper.pdf"))
	first, ok := rec.FirstFrameContaining("Drop")
	require.True(t, ok)
	require.Equal(t, 0, first.Index)
	require.True(t, rec.Contains("Analyzing paper.pdf"))
}

func TestFinalFrameOnEmptyRecording(t *testing.T) {
	var rec *Recording
	_, ok := rec.FinalFrame()
	require.False(t, ok)
	require.False(t, rec.Contains("anything"))
}

func TestResponderAnswersInOrder(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out, BackgroundLight)
	tr.Process([]byte("\x1b]11;?\x07junk\x1b[6n"))
	require.Equal(t, "\x1b]11;rgb:ffff/ffff/ffff\x07\x1b[1;1R", out.String())
}

func TestResponderHandlesSplitQueries(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out, BackgroundDark)
	tr.Process([]byte("\x1b]10"))
	require.Empty(t, out.String())
	tr.Process([]byte(";?\x1b\\"))
	require.Equal(t, "\x1b]10;rgb:cccc/cccc/cccc\x1b\\", out.String())
}
