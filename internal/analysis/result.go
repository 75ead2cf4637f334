package analysis

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Result is the analysis payload returned by the backend for one document.
// Every section is optional: a nil pointer (or empty slice/map) means the backend
// did not produce it or flagged it as failed.
type Result struct {
	Status         string  `json:"status,omitempty"`
	Filename       string  `json:"filename,omitempty"`
	Timestamp      float64 `json:"timestamp,omitempty"`
	ProcessingTime float64 `json:"processing_time,omitempty"`

	FileInfo                  *FileInfo            `json:"file_info,omitempty"`
	Statistics                *Statistics          `json:"statistics,omitempty"`
	TopicClassification       *TopicClassification `json:"topic_classification,omitempty"`
	SectionAnalysis           *SectionAnalysis     `json:"section_analysis,omitempty"`
	MethodologyClassification *Methodology         `json:"methodology_classification,omitempty"`
	SentimentAnalysis         *Sentiment           `json:"sentiment_analysis,omitempty"`
	ContributionType          *Contribution        `json:"contribution_type,omitempty"`
	Keywords                  []Keyword            `json:"keywords,omitempty"`
	NamedEntities             map[string][]string  `json:"named_entities,omitempty"`
	Summary                   *Summary             `json:"summary,omitempty"`
	ReadabilityAnalysis       *Readability         `json:"readability_analysis,omitempty"`
	CitationsAnalysis         *Citations           `json:"citations_analysis,omitempty"`
	ResearchQuestions         *ResearchQuestions   `json:"research_questions,omitempty"`
	QualityScore              *QualityScore        `json:"quality_score,omitempty"`

	raw json.RawMessage
}

type FileInfo struct {
	Type             string  `json:"type"`
	SizeKB           float64 `json:"size_kb"`
	ExtractionMethod string  `json:"extraction_method"`
}

type Statistics struct {
	WordCount      int  `json:"word_count"`
	CharacterCount int  `json:"character_count"`
	EstimatedPages *int `json:"-"`
}

type ScoredLabel struct {
	Label      string
	Confidence float64
}

type TopicClassification struct {
	PrimaryTopic    string        `json:"primary_topic"`
	Confidence      float64       `json:"confidence"`
	SecondaryTopics []ScoredLabel `json:"-"`
}

type SectionDetail struct {
	Found    bool   `json:"found"`
	Position int    `json:"position"`
	Snippet  string `json:"snippet"`
}

type SectionAnalysis struct {
	SectionsFound []string                 `json:"sections_found"`
	TotalSections int                      `json:"total_sections"`
	Details       map[string]SectionDetail `json:"details"`
}

type Methodology struct {
	PrimaryMethodology     string        `json:"primary_methodology"`
	Confidence             float64       `json:"confidence"`
	SecondaryMethodologies []ScoredLabel `json:"-"`
}

type Sentiment struct {
	Sentiment    string  `json:"sentiment"`
	Confidence   float64 `json:"confidence"`
	AcademicTone string  `json:"academic_tone"`
}

type Contribution struct {
	ContributionType string  `json:"contribution_type"`
	Confidence       float64 `json:"confidence"`
}

type Keyword struct {
	Keyword        string  `json:"keyword"`
	RelevanceScore float64 `json:"relevance_score"`
}

type Summary struct {
	OneSentence      string   `json:"one_sentence"`
	ShortSummary     string   `json:"short_summary"`
	ExecutiveSummary string   `json:"executive_summary"`
	KeyFindings      []string `json:"key_findings"`
}

type Readability struct {
	FleschReadingEase       float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade      float64 `json:"flesch_kincaid_grade"`
	Interpretation          string  `json:"interpretation"`
	AcademicLevel           string  `json:"academic_level"`
	AverageGradeLevel       float64 `json:"average_grade_level"`
	SentenceCount           int     `json:"sentence_count"`
	WordCount               int     `json:"word_count"`
	AverageSentenceLength   float64 `json:"average_sentence_length"`
	AverageSyllablesPerWord float64 `json:"average_syllables_per_word"`
	Error                   string  `json:"error"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type Citations struct {
	TotalReferences int           `json:"total_references"`
	References      []string      `json:"references"`
	CitationStyle   string        `json:"citation_style"`
	TopAuthors      []AuthorCount `json:"top_authors"`
}

type ResearchQuestions struct {
	Questions       []string `json:"research_questions"`
	Hypotheses      []string `json:"hypotheses"`
	Objectives      []string `json:"objectives"`
	TotalQuestions  int      `json:"total_questions"`
	TotalHypotheses int      `json:"total_hypotheses"`
}

type QualityScore struct {
	OverallScore    float64            `json:"overall_score"`
	Rating          string             `json:"rating"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Strengths       []string           `json:"strengths"`
	Improvements    []string           `json:"improvements"`
}

// Decode parses a backend payload and keeps the original bytes for re-submission.
func Decode(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UnmarshalJSON decodes the payload and maps failure sentinels to absent sections.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Result(decoded)
	r.raw = append(json.RawMessage(nil), data...)
	r.dropSentinels()
	return nil
}

// MarshalJSON returns the payload exactly as the backend sent it, unknown fields included.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Result
	return json.Marshal(plain(r))
}

// Raw returns the original payload bytes, if the result was decoded.
func (r *Result) Raw() json.RawMessage {
	return r.raw
}

// Empty reports whether no section carries data.
func (r *Result) Empty() bool {
	return r.FileInfo == nil && r.Statistics == nil && r.TopicClassification == nil &&
		r.SectionAnalysis == nil && r.MethodologyClassification == nil && r.SentimentAnalysis == nil &&
		r.ContributionType == nil && len(r.Keywords) == 0 && len(r.NamedEntities) == 0 &&
		r.Summary == nil && r.ReadabilityAnalysis == nil && r.CitationsAnalysis == nil &&
		r.ResearchQuestions == nil && r.QualityScore == nil
}

var sentinelTexts = map[string]bool{
	"unable to classify":               true,
	"unable to assess":                 true,
	"summary generation failed":        true,
	"text too short for summarization": true,
	"not explicitly stated":            true,
	"not extracted":                    true,
	"extraction failed":                true,
	"key findings not extracted":       true,
	"n/a":                              true,
}

func isSentinel(value string) bool {
	return sentinelTexts[strings.ToLower(strings.TrimSpace(value))]
}

func withoutSentinels(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" || isSentinel(item) {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (r *Result) dropSentinels() {
	if t := r.TopicClassification; t != nil && (t.PrimaryTopic == "" || isSentinel(t.PrimaryTopic)) {
		r.TopicClassification = nil
	}
	if m := r.MethodologyClassification; m != nil && (m.PrimaryMethodology == "" || isSentinel(m.PrimaryMethodology)) {
		r.MethodologyClassification = nil
	}
	if c := r.ContributionType; c != nil && (c.ContributionType == "" || isSentinel(c.ContributionType)) {
		r.ContributionType = nil
	}
	if s := r.SentimentAnalysis; s != nil && s.Sentiment == "" {
		r.SentimentAnalysis = nil
	}
	if s := r.SectionAnalysis; s != nil && len(s.SectionsFound) == 0 {
		r.SectionAnalysis = nil
	}
	if s := r.Summary; s != nil {
		if isSentinel(s.OneSentence) {
			s.OneSentence = ""
		}
		if isSentinel(s.ShortSummary) {
			s.ShortSummary = ""
		}
		if isSentinel(s.ExecutiveSummary) {
			s.ExecutiveSummary = ""
		}
		s.KeyFindings = withoutSentinels(s.KeyFindings)
		if s.OneSentence == "" && s.ShortSummary == "" && s.ExecutiveSummary == "" && len(s.KeyFindings) == 0 {
			r.Summary = nil
		}
	}
	if rd := r.ReadabilityAnalysis; rd != nil && rd.Error != "" {
		r.ReadabilityAnalysis = nil
	}
	if c := r.CitationsAnalysis; c != nil {
		if isSentinel(c.CitationStyle) || c.CitationStyle == "Not detected" {
			c.CitationStyle = ""
		}
		if c.TotalReferences == 0 && len(c.References) == 0 {
			r.CitationsAnalysis = nil
		}
	}
	if q := r.ResearchQuestions; q != nil {
		q.Questions = withoutSentinels(q.Questions)
		q.Hypotheses = withoutSentinels(q.Hypotheses)
		q.Objectives = withoutSentinels(q.Objectives)
		if len(q.Questions) == 0 && len(q.Hypotheses) == 0 && len(q.Objectives) == 0 {
			r.ResearchQuestions = nil
		}
	}
	if q := r.QualityScore; q != nil && (q.Rating == "" || isSentinel(q.Rating)) {
		r.QualityScore = nil
	}
	if len(r.NamedEntities) > 0 {
		for label, values := range r.NamedEntities {
			if len(values) == 0 {
				delete(r.NamedEntities, label)
			}
		}
	}
}

// UnmarshalJSON accepts estimated_pages as a number or as a placeholder string.
func (s *Statistics) UnmarshalJSON(data []byte) error {
	var decoded struct {
		WordCount      int             `json:"word_count"`
		CharacterCount int             `json:"character_count"`
		EstimatedPages json.RawMessage `json:"estimated_pages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	s.WordCount = decoded.WordCount
	s.CharacterCount = decoded.CharacterCount
	s.EstimatedPages = flexibleInt(decoded.EstimatedPages)
	return nil
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"word_count":      s.WordCount,
		"character_count": s.CharacterCount,
	}
	if s.EstimatedPages != nil {
		out["estimated_pages"] = *s.EstimatedPages
	} else {
		out["estimated_pages"] = "N/A"
	}
	return json.Marshal(out)
}

func flexibleInt(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		value := int(number)
		return &value
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if value, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			return &value
		}
	}
	return nil
}

func (t *TopicClassification) UnmarshalJSON(data []byte) error {
	var decoded struct {
		PrimaryTopic    string  `json:"primary_topic"`
		Confidence      float64 `json:"confidence"`
		SecondaryTopics []struct {
			Topic      string  `json:"topic"`
			Confidence float64 `json:"confidence"`
		} `json:"secondary_topics"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	t.PrimaryTopic = decoded.PrimaryTopic
	t.Confidence = decoded.Confidence
	t.SecondaryTopics = nil
	for _, item := range decoded.SecondaryTopics {
		t.SecondaryTopics = append(t.SecondaryTopics, ScoredLabel{Label: item.Topic, Confidence: item.Confidence})
	}
	return nil
}

func (t TopicClassification) MarshalJSON() ([]byte, error) {
	secondary := make([]map[string]any, 0, len(t.SecondaryTopics))
	for _, item := range t.SecondaryTopics {
		secondary = append(secondary, map[string]any{"topic": item.Label, "confidence": item.Confidence})
	}
	return json.Marshal(map[string]any{
		"primary_topic":    t.PrimaryTopic,
		"confidence":       t.Confidence,
		"secondary_topics": secondary,
	})
}

func (m *Methodology) UnmarshalJSON(data []byte) error {
	var decoded struct {
		PrimaryMethodology     string  `json:"primary_methodology"`
		Confidence             float64 `json:"confidence"`
		SecondaryMethodologies []struct {
			Method     string  `json:"method"`
			Confidence float64 `json:"confidence"`
		} `json:"secondary_methodologies"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	m.PrimaryMethodology = decoded.PrimaryMethodology
	m.Confidence = decoded.Confidence
	m.SecondaryMethodologies = nil
	for _, item := range decoded.SecondaryMethodologies {
		m.SecondaryMethodologies = append(m.SecondaryMethodologies, ScoredLabel{Label: item.Method, Confidence: item.Confidence})
	}
	return nil
}

func (m Methodology) MarshalJSON() ([]byte, error) {
	secondary := make([]map[string]any, 0, len(m.SecondaryMethodologies))
	for _, item := range m.SecondaryMethodologies {
		secondary = append(secondary, map[string]any{"method": item.Label, "confidence": item.Confidence})
	}
	return json.Marshal(map[string]any{
		"primary_methodology":     m.PrimaryMethodology,
		"confidence":              m.Confidence,
		"secondary_methodologies": secondary,
	})
}

// ErrEmptyReport is returned when the backend answers a report request with no bytes.
var ErrEmptyReport = errors.New("received an empty file")
