package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/results"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

func (f *markdownFormatter) Format(result *analysis.Result) ([]byte, error) {
	var b strings.Builder

	title := result.Filename
	if title == "" {
		title = "Document"
	}
	b.WriteString(fmt.Sprintf("# Paper Analysis: %s\n\n", title))

	f.writeOverview(&b, result)
	f.writeClassification(&b, result)
	f.writeSummary(&b, result)
	f.writeReadability(&b, result)
	f.writeCitations(&b, result)
	f.writeQuestions(&b, result)
	f.writeQuality(&b, result)
	f.writeKeywords(&b, result)

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

func (f *markdownFormatter) writeOverview(b *strings.Builder, r *analysis.Result) {
	if r.FileInfo == nil && r.Statistics == nil {
		return
	}
	b.WriteString("## Overview\n\n| Field | Value |\n|---|---|\n")
	if fi := r.FileInfo; fi != nil {
		row(b, "Type", strings.TrimPrefix(fi.Type, "."))
		row(b, "Size", results.KB(fi.SizeKB))
		row(b, "Extraction", fi.ExtractionMethod)
	}
	if st := r.Statistics; st != nil {
		row(b, "Words", fmt.Sprintf("%d", st.WordCount))
		row(b, "Characters", fmt.Sprintf("%d", st.CharacterCount))
		if st.EstimatedPages != nil {
			row(b, "Estimated pages", fmt.Sprintf("%d", *st.EstimatedPages))
		}
	}
	if r.ProcessingTime > 0 {
		row(b, "Processing time", fmt.Sprintf("%.2fs", r.ProcessingTime))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeClassification(b *strings.Builder, r *analysis.Result) {
	var rows [][2]string
	if t := r.TopicClassification; t != nil {
		rows = append(rows, [2]string{"Topic", fmt.Sprintf("%s (%s)", t.PrimaryTopic, results.Percent(t.Confidence))})
	}
	if m := r.MethodologyClassification; m != nil {
		rows = append(rows, [2]string{"Methodology", fmt.Sprintf("%s (%s)", m.PrimaryMethodology, results.Percent(m.Confidence))})
	}
	if s := r.SentimentAnalysis; s != nil {
		rows = append(rows, [2]string{"Sentiment", fmt.Sprintf("%s, %s tone", s.Sentiment, s.AcademicTone)})
	}
	if c := r.ContributionType; c != nil {
		rows = append(rows, [2]string{"Contribution", fmt.Sprintf("%s (%s)", c.ContributionType, results.Percent(c.Confidence))})
	}
	if len(rows) == 0 {
		return
	}
	b.WriteString("## Classification\n\n| Aspect | Result |\n|---|---|\n")
	for _, entry := range rows {
		row(b, entry[0], entry[1])
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSummary(b *strings.Builder, r *analysis.Result) {
	s := r.Summary
	if s == nil {
		return
	}
	b.WriteString("## Summary\n\n")
	if s.OneSentence != "" {
		b.WriteString("> " + s.OneSentence + "\n\n")
	}
	if s.ShortSummary != "" {
		b.WriteString(s.ShortSummary + "\n\n")
	}
	if s.ExecutiveSummary != "" {
		b.WriteString("### Executive summary\n\n" + s.ExecutiveSummary + "\n\n")
	}
	list(b, "Key findings", s.KeyFindings)
}

func (f *markdownFormatter) writeReadability(b *strings.Builder, r *analysis.Result) {
	rd := r.ReadabilityAnalysis
	if rd == nil {
		return
	}
	b.WriteString("## Readability\n\n| Metric | Value |\n|---|---|\n")
	row(b, "Flesch reading ease", fmt.Sprintf("%.1f", rd.FleschReadingEase))
	row(b, "Flesch-Kincaid grade", fmt.Sprintf("%.1f", rd.FleschKincaidGrade))
	row(b, "Interpretation", rd.Interpretation)
	row(b, "Academic level", rd.AcademicLevel)
	b.WriteString("\n")
}

func (f *markdownFormatter) writeCitations(b *strings.Builder, r *analysis.Result) {
	c := r.CitationsAnalysis
	if c == nil {
		return
	}
	b.WriteString(fmt.Sprintf("## Citations\n\n%d references", c.TotalReferences))
	if c.CitationStyle != "" {
		b.WriteString(fmt.Sprintf(", %s style", c.CitationStyle))
	}
	b.WriteString(".\n\n")
	refs := c.References
	if len(refs) > 5 {
		refs = refs[:5]
	}
	list(b, "References", refs)
}

func (f *markdownFormatter) writeQuestions(b *strings.Builder, r *analysis.Result) {
	q := r.ResearchQuestions
	if q == nil {
		return
	}
	b.WriteString("## Research Questions\n\n")
	list(b, "Questions", q.Questions)
	list(b, "Hypotheses", q.Hypotheses)
	list(b, "Objectives", q.Objectives)
}

func (f *markdownFormatter) writeQuality(b *strings.Builder, r *analysis.Result) {
	q := r.QualityScore
	if q == nil {
		return
	}
	b.WriteString(fmt.Sprintf("## Quality Score\n\n**%.1f / 100** (%s)\n\n", q.OverallScore, q.Rating))
	if len(q.ComponentScores) > 0 {
		keys := make([]string, 0, len(q.ComponentScores))
		for k := range q.ComponentScores {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("| Component | Score |\n|---|---|\n")
		for _, k := range keys {
			row(b, k, fmt.Sprintf("%.1f", q.ComponentScores[k]))
		}
		b.WriteString("\n")
	}
	list(b, "Strengths", q.Strengths)
	list(b, "Areas to improve", q.Improvements)
}

func (f *markdownFormatter) writeKeywords(b *strings.Builder, r *analysis.Result) {
	if len(r.Keywords) == 0 {
		return
	}
	kws := r.Keywords
	if len(kws) > 10 {
		kws = kws[:10]
	}
	names := make([]string, 0, len(kws))
	for _, kw := range kws {
		names = append(names, "`"+kw.Keyword+"`")
	}
	b.WriteString("## Keywords\n\n" + strings.Join(names, " ") + "\n\n")
}

func row(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("| %s | %s |\n", key, strings.ReplaceAll(value, "|", `\|`)))
}

func list(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("### " + heading + "\n\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}
