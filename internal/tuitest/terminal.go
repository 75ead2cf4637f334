package tuitest

import (
	"bytes"
	"io"
)

// Background selects how the fake terminal answers colour queries. Lip Gloss
// asks for the background colour to pick adaptive styles.
type Background string

const (
	BackgroundDark  Background = "dark"
	BackgroundLight Background = "light"
)

type query struct {
	pattern  []byte
	response []byte
}

func queriesFor(bg Background) []query {
	fg, bgColor := "cccc/cccc/cccc", "0000/0000/0000"
	if bg == BackgroundLight {
		fg, bgColor = "1111/1111/1111", "ffff/ffff/ffff"
	}
	var out []query
	out = append(out, query{[]byte("\x1b[6n"), []byte("\x1b[1;1R")})
	for _, term := range []string{"\x07", "\x1b\\"} {
		out = append(out,
			query{[]byte("\x1b]10;?" + term), []byte("\x1b]10;rgb:" + fg + term)},
			query{[]byte("\x1b]11;?" + term), []byte("\x1b]11;rgb:" + bgColor + term)},
		)
	}
	return out
}

// terminalResponder answers the handful of terminal queries a Bubble Tea
// program sends on startup so it never blocks waiting for a real terminal.
type terminalResponder struct {
	w       io.Writer
	buf     []byte
	queries []query
}

func newTerminalResponder(w io.Writer, bg Background) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128), queries: queriesFor(bg)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	// queries can span reads
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerNext replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerNext() bool {
	first, at := -1, len(tr.buf)
	for i, q := range tr.queries {
		if idx := bytes.Index(tr.buf, q.pattern); idx >= 0 && idx < at {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	q := tr.queries[first]
	tr.buf = tr.buf[at+len(q.pattern):]
	_, _ = tr.w.Write(q.response)
	return true
}
