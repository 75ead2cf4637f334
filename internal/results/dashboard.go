package results

import (
	"fmt"
	"strings"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/theme"
)

// Section keys for the dashboard.
const (
	AnchorOverview     = "overview"
	AnchorTopic        = "topic"
	AnchorMethodology  = "methodology"
	AnchorSentiment    = "sentiment"
	AnchorContribution = "contribution"
	AnchorSections     = "sections"
	AnchorKeywords     = "keywords"
	AnchorEntities     = "entities"
)

// Dashboard renders file info, statistics and the classification sections.
func Dashboard(r *analysis.Result, s *theme.Styles, width int) View {
	cb := newBuilder(s, width)
	if r == nil {
		return cb.view()
	}

	if r.FileInfo != nil || r.Statistics != nil || r.Filename != "" {
		cb.section(AnchorOverview, "Document Overview")
		cb.field("File", r.Filename)
		if fi := r.FileInfo; fi != nil {
			cb.field("Type", strings.TrimPrefix(fi.Type, "."))
			cb.field("Size", KB(fi.SizeKB))
			cb.field("Extraction", fi.ExtractionMethod)
		}
		if st := r.Statistics; st != nil {
			cb.field("Words", fmt.Sprintf("%d", st.WordCount))
			cb.field("Characters", fmt.Sprintf("%d", st.CharacterCount))
			if st.EstimatedPages != nil {
				cb.field("Estimated pages", fmt.Sprintf("%d", *st.EstimatedPages))
			}
		}
		if r.ProcessingTime > 0 {
			cb.field("Processing time", fmt.Sprintf("%.2fs", r.ProcessingTime))
		}
	}

	if t := r.TopicClassification; t != nil {
		cb.section(AnchorTopic, "Topic Classification")
		cb.field("Primary topic", t.PrimaryTopic)
		cb.field("Confidence", Percent(t.Confidence))
		writeScoredLabels(cb, "Also related to", top(t.SecondaryTopics, topSecondary))
	}

	if m := r.MethodologyClassification; m != nil {
		cb.section(AnchorMethodology, "Research Methodology")
		cb.field("Primary methodology", m.PrimaryMethodology)
		cb.field("Confidence", Percent(m.Confidence))
		writeScoredLabels(cb, "Secondary", top(m.SecondaryMethodologies, topSecondary))
	}

	if se := r.SentimentAnalysis; se != nil {
		cb.section(AnchorSentiment, "Sentiment & Tone")
		cb.field("Sentiment", se.Sentiment)
		cb.field("Confidence", Percent(se.Confidence))
		cb.field("Academic tone", se.AcademicTone)
	}

	if c := r.ContributionType; c != nil {
		cb.section(AnchorContribution, "Contribution Type")
		cb.field("Type", c.ContributionType)
		cb.field("Confidence", Percent(c.Confidence))
	}

	if sa := r.SectionAnalysis; sa != nil {
		cb.section(AnchorSections, "Detected Sections")
		total := sa.TotalSections
		if total < len(sa.SectionsFound) {
			total = len(sa.SectionsFound)
		}
		cb.field("Found", fmt.Sprintf("%d", total))
		names := make([]string, 0, len(sa.SectionsFound))
		for _, name := range sa.SectionsFound {
			names = append(names, titleCase(name))
		}
		cb.paragraph(strings.Join(names, " · "))
	}

	if len(r.Keywords) > 0 {
		cb.section(AnchorKeywords, "Keywords")
		for _, kw := range top(r.Keywords, topKeywords) {
			cb.WriteString(fmt.Sprintf(" • %s %s", kw.Keyword, cb.styles.Helper.Render("("+Percent(kw.RelevanceScore)+")")))
			cb.WriteRune('\n')
		}
	}

	if len(r.NamedEntities) > 0 {
		cb.section(AnchorEntities, "Named Entities")
		for _, label := range sortedKeys(r.NamedEntities) {
			values := top(r.NamedEntities[label], topEntities)
			cb.field(label, strings.Join(values, ", "))
		}
	}

	return cb.view()
}

func writeScoredLabels(cb *contentBuilder, heading string, labels []analysis.ScoredLabel) {
	if len(labels) == 0 {
		return
	}
	cb.subheading(heading)
	for _, l := range labels {
		cb.WriteString(fmt.Sprintf(" • %s %s", l.Label, cb.styles.Helper.Render("("+Percent(l.Confidence)+")")))
		cb.WriteRune('\n')
	}
}
