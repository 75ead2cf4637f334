package results

import (
	"fmt"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/theme"
)

// Section keys for the enhanced analysis.
const (
	AnchorSummary     = "summary"
	AnchorReadability = "readability"
	AnchorCitations   = "citations"
	AnchorQuestions   = "questions"
	AnchorQuality     = "quality"
)

// Enhanced renders summary, readability, citations, research questions and quality.
func Enhanced(r *analysis.Result, s *theme.Styles, width int) View {
	cb := newBuilder(s, width)
	if r == nil {
		return cb.view()
	}

	if sum := r.Summary; sum != nil {
		cb.section(AnchorSummary, "Summary")
		if sum.OneSentence != "" {
			cb.subheading("In one sentence")
			cb.paragraph(sum.OneSentence)
		}
		if sum.ShortSummary != "" {
			cb.subheading("Short summary")
			cb.paragraph(sum.ShortSummary)
		}
		if sum.ExecutiveSummary != "" {
			cb.subheading("Executive summary")
			cb.paragraph(sum.ExecutiveSummary)
		}
		if len(sum.KeyFindings) > 0 {
			cb.subheading("Key findings")
			cb.bullets(sum.KeyFindings)
		}
	}

	if rd := r.ReadabilityAnalysis; rd != nil {
		cb.section(AnchorReadability, "Readability")
		cb.field("Flesch reading ease", fmt.Sprintf("%.1f", rd.FleschReadingEase))
		cb.field("Flesch-Kincaid grade", fmt.Sprintf("%.1f", rd.FleschKincaidGrade))
		cb.field("Interpretation", rd.Interpretation)
		cb.field("Academic level", rd.AcademicLevel)
		if rd.AverageGradeLevel > 0 {
			cb.field("Average grade level", fmt.Sprintf("%.1f", rd.AverageGradeLevel))
		}
		if rd.SentenceCount > 0 {
			cb.field("Sentences", fmt.Sprintf("%d", rd.SentenceCount))
		}
		if rd.AverageSentenceLength > 0 {
			cb.field("Avg sentence length", fmt.Sprintf("%.1f words", rd.AverageSentenceLength))
		}
		if rd.AverageSyllablesPerWord > 0 {
			cb.field("Avg syllables/word", fmt.Sprintf("%.2f", rd.AverageSyllablesPerWord))
		}
	}

	if c := r.CitationsAnalysis; c != nil {
		cb.section(AnchorCitations, "Citations")
		cb.field("Total references", fmt.Sprintf("%d", c.TotalReferences))
		cb.field("Citation style", c.CitationStyle)
		if refs := top(c.References, topReferences); len(refs) > 0 {
			cb.subheading("References")
			cb.bullets(refs)
			if extra := len(c.References) - len(refs); extra > 0 {
				cb.WriteString(cb.styles.Helper.Render(fmt.Sprintf("   … and %d more", extra)))
				cb.WriteRune('\n')
			}
		}
		if authors := top(c.TopAuthors, topAuthors); len(authors) > 0 {
			cb.subheading("Most cited authors")
			for _, a := range authors {
				cb.WriteString(fmt.Sprintf(" • %s %s", a.Author, cb.styles.Helper.Render(fmt.Sprintf("(%d)", a.Count))))
				cb.WriteRune('\n')
			}
		}
	}

	if q := r.ResearchQuestions; q != nil {
		cb.section(AnchorQuestions, "Research Questions")
		if len(q.Questions) > 0 {
			cb.subheading("Questions")
			cb.bullets(q.Questions)
		}
		if len(q.Hypotheses) > 0 {
			cb.subheading("Hypotheses")
			cb.bullets(q.Hypotheses)
		}
		if len(q.Objectives) > 0 {
			cb.subheading("Objectives")
			cb.bullets(q.Objectives)
		}
	}

	if qs := r.QualityScore; qs != nil {
		cb.section(AnchorQuality, "Quality Score")
		cb.WriteString(cb.styles.Accent.Render(fmt.Sprintf("%.1f / 100", qs.OverallScore)) + "  " + cb.styles.Value.Render(qs.Rating))
		cb.WriteRune('\n')
		if len(qs.ComponentScores) > 0 {
			cb.subheading("Components")
			for _, key := range sortedKeys(qs.ComponentScores) {
				cb.field(titleCase(key), fmt.Sprintf("%.1f", qs.ComponentScores[key]))
			}
		}
		if len(qs.Strengths) > 0 {
			cb.subheading("Strengths")
			cb.bullets(qs.Strengths)
		}
		if len(qs.Improvements) > 0 {
			cb.subheading("Areas to improve")
			cb.bullets(qs.Improvements)
		}
	}

	return cb.view()
}
