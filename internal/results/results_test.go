package results

import (
	"fmt"
	"strings"
	"testing"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/theme"
)

func decode(t *testing.T, payload string) *analysis.Result {
	t.Helper()
	r, err := analysis.Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func anchorKeys(v View) []string {
	keys := make([]string, 0, len(v.Anchors))
	for _, a := range v.Anchors {
		keys = append(keys, a.Key)
	}
	return keys
}

func TestDashboardFormatsAndTruncates(t *testing.T) {
	t.Parallel()

	var keywords []string
	for i := 0; i < 12; i++ {
		keywords = append(keywords, fmt.Sprintf(`{"keyword":"kw%02d","relevance_score":%d}`, i, 90-i))
	}
	r := decode(t, `{
	  "filename": "paper.pdf",
	  "file_info": {"type": ".pdf", "size_kb": 1536, "extraction_method": "pdfplumber"},
	  "statistics": {"word_count": 4200, "character_count": 25000, "estimated_pages": 17},
	  "topic_classification": {"primary_topic": "Computer Vision", "confidence": 87.456,
	    "secondary_topics": [{"topic":"Robotics","confidence":40},{"topic":"Graphics","confidence":20},{"topic":"Audio","confidence":5}]},
	  "keywords": [`+strings.Join(keywords, ",")+`],
	  "named_entities": {"PERSON": ["a","b","c","d","e","f"], "ORG": ["MIT"]}
	}`)

	v := Dashboard(r, theme.Plain(), 100)
	for _, want := range []string{"1536.00 KB", "87.5%", "Robotics", "Graphics", "kw09", "Estimated pages: 17"} {
		if !strings.Contains(v.Content, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, v.Content)
		}
	}
	for _, unwanted := range []string{"Audio", "kw10", "kw11", ", f"} {
		if strings.Contains(v.Content, unwanted) {
			t.Fatalf("dashboard should truncate %q:\n%s", unwanted, v.Content)
		}
	}
	if strings.Index(v.Content, "ORG") > strings.Index(v.Content, "PERSON") {
		t.Fatal("entity labels should be sorted")
	}
	got := strings.Join(anchorKeys(v), ",")
	if got != "overview,topic,keywords,entities" {
		t.Fatalf("unexpected anchors %s", got)
	}
}

func TestMissingSectionsAreSkippedSilently(t *testing.T) {
	t.Parallel()

	r := decode(t, `{
	  "topic_classification": {"primary_topic": "Unable to classify", "confidence": 0},
	  "readability_analysis": {"error": "Text too short"},
	  "summary": {"one_sentence": "Summary generation failed"},
	  "quality_score": {"overall_score": 0, "rating": "Unable to assess"}
	}`)
	v := Render(r, theme.Plain(), 80)
	if v.Content != "" || len(v.Anchors) != 0 {
		t.Fatalf("expected nothing rendered, got anchors %v:\n%s", anchorKeys(v), v.Content)
	}
	for _, word := range []string{"Unable", "error", "failed"} {
		if strings.Contains(v.Content, word) {
			t.Fatalf("sentinel %q leaked into output", word)
		}
	}
}

func TestEnhancedSections(t *testing.T) {
	t.Parallel()

	r := decode(t, `{
	  "summary": {"one_sentence": "A new optimizer.", "short_summary": "Short.", "executive_summary": "Exec.", "key_findings": ["Faster", "Stable"]},
	  "readability_analysis": {"flesch_reading_ease": 31.24, "flesch_kincaid_grade": 13.9, "interpretation": "Difficult", "academic_level": "College"},
	  "citations_analysis": {"total_references": 7, "references": ["r1","r2","r3","r4","r5","r6","r7"], "citation_style": "APA",
	    "top_authors": [{"author":"Smith","count":4},{"author":"Lee","count":2}]},
	  "research_questions": {"research_questions": ["Does it converge?"], "hypotheses": [], "objectives": []},
	  "quality_score": {"overall_score": 78.24, "rating": "Good", "component_scores": {"structure": 80, "clarity": 70}, "strengths": ["Clear"], "improvements": ["More baselines"]}
	}`)
	v := Enhanced(r, theme.Plain(), 80)

	for _, want := range []string{"A new optimizer.", "Faster", "31.2", "APA", "r5", "and 2 more", "Smith (4)", "Does it converge?", "78.2 / 100", "Good", "Clarity: 70.0", "More baselines"} {
		if !strings.Contains(v.Content, want) {
			t.Fatalf("enhanced output missing %q:\n%s", want, v.Content)
		}
	}
	if strings.Contains(v.Content, "r6") {
		t.Fatal("references should be capped at five")
	}
	if strings.Contains(v.Content, "Hypotheses") {
		t.Fatal("empty hypothesis list should not render a heading")
	}
	got := strings.Join(anchorKeys(v), ",")
	if got != "summary,readability,citations,questions,quality" {
		t.Fatalf("unexpected anchors %s", got)
	}
}

func TestRenderAnchorsPointAtHeaders(t *testing.T) {
	t.Parallel()

	r := decode(t, `{
	  "filename": "x.txt",
	  "sentiment_analysis": {"sentiment": "NEUTRAL", "confidence": 55, "academic_tone": "Objective"},
	  "summary": {"one_sentence": "One."},
	  "quality_score": {"overall_score": 50, "rating": "Fair"}
	}`)
	v := Render(r, theme.Plain(), 80)
	lines := strings.Split(v.Content, "\n")
	titles := map[string]string{
		AnchorOverview:  "Document Overview",
		AnchorSentiment: "Sentiment & Tone",
		AnchorSummary:   "Summary",
		AnchorQuality:   "Quality Score",
	}
	if len(v.Anchors) != len(titles) {
		t.Fatalf("expected %d anchors, got %v", len(titles), anchorKeys(v))
	}
	for _, a := range v.Anchors {
		if a.Line >= len(lines) {
			t.Fatalf("anchor %s beyond content", a.Key)
		}
		if lines[a.Line] != titles[a.Key] {
			t.Fatalf("anchor %s points at %q", a.Key, lines[a.Line])
		}
	}
}

func TestNilResultRendersNothing(t *testing.T) {
	t.Parallel()

	if v := Render(nil, nil, 0); v.Content != "" {
		t.Fatalf("expected empty view, got %q", v.Content)
	}
}
