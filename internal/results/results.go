// Package results renders an analysis result as styled terminal text. The renderers
// are pure: they take the result, a style set and a width and return a string plus
// the line offsets of each section so callers can jump between them.
package results

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/theme"
)

const (
	topSecondary  = 2
	topKeywords   = 10
	topEntities   = 5
	topReferences = 5
	topAuthors    = 5
	minWrapWidth  = 20
)

// Anchor marks the first line of a rendered section.
type Anchor struct {
	Key   string
	Title string
	Line  int
}

// View is a rendered block of sections.
type View struct {
	Content string
	Anchors []Anchor
}

// Append concatenates two views, shifting the anchors of other below v.
func (v View) Append(other View) View {
	if v.Content == "" {
		return other
	}
	if other.Content == "" {
		return v
	}
	offset := strings.Count(v.Content, "\n") + 2
	content := v.Content + "\n\n" + other.Content
	anchors := append([]Anchor(nil), v.Anchors...)
	for _, a := range other.Anchors {
		a.Line += offset
		anchors = append(anchors, a)
	}
	return View{Content: content, Anchors: anchors}
}

// Render draws the dashboard followed by the enhanced sections.
func Render(r *analysis.Result, s *theme.Styles, width int) View {
	return Dashboard(r, s, width).Append(Enhanced(r, s, width))
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
	anchors []Anchor
	styles  *theme.Styles
	wrap    int
}

func newBuilder(s *theme.Styles, width int) *contentBuilder {
	if s == nil {
		s = theme.Plain()
	}
	wrap := width - 4
	if wrap < minWrapWidth {
		wrap = minWrapWidth
	}
	return &contentBuilder{styles: s, wrap: wrap}
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func (cb *contentBuilder) section(key, title string) {
	if cb.builder.Len() > 0 {
		cb.WriteRune('\n')
	}
	cb.anchors = append(cb.anchors, Anchor{Key: key, Title: title, Line: cb.Line()})
	cb.WriteString(cb.styles.SectionHeader.Render(title))
	cb.WriteRune('\n')
}

func (cb *contentBuilder) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	cb.WriteString(cb.styles.Label.Render(label+": ") + cb.styles.Value.Render(value))
	cb.WriteRune('\n')
}

func (cb *contentBuilder) subheading(text string) {
	cb.WriteString(cb.styles.Subtitle.Render(text))
	cb.WriteRune('\n')
}

func (cb *contentBuilder) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	cb.WriteString(indentMultiline(wordwrap.String(text, cb.wrap), "  "))
	cb.WriteRune('\n')
}

func (cb *contentBuilder) bullets(items []string) {
	for _, item := range items {
		wrapped := wordwrap.String(strings.TrimSpace(item), cb.wrap-3)
		cb.WriteString(" • " + indentContinuation(wrapped, "   "))
		cb.WriteRune('\n')
	}
}

func (cb *contentBuilder) view() View {
	return View{Content: strings.TrimRight(cb.builder.String(), "\n"), Anchors: cb.anchors}
}

// Percent formats a 0-100 score with one decimal place.
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// KB formats a kilobyte size with two decimal places.
func KB(value float64) string {
	return fmt.Sprintf("%.2f KB", value)
}

func top[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func indentContinuation(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// titleCase turns backend keys such as "research_questions" into "Research Questions".
func titleCase(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
