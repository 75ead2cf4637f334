package tui

// feature is one capability listed on the intake screen before a file is chosen.
type feature struct {
	Title       string
	Description string
}

func showcaseFeatures() []feature {
	return []feature{
		{Title: "Topic classification", Description: "Primary research field with confidence and the closest runner-up topics."},
		{Title: "Methodology & contribution", Description: "Experimental, theoretical or survey style, and what kind of contribution the paper makes."},
		{Title: "Summaries", Description: "A one-sentence takeaway, a short abstract-style summary and the key findings."},
		{Title: "Readability", Description: "Flesch scores and the academic level the text is written for."},
		{Title: "Citations", Description: "Reference count, citation style and the most cited authors."},
		{Title: "Research questions", Description: "Questions, hypotheses and objectives stated in the text."},
		{Title: "Quality score", Description: "An overall score with component scores, strengths and areas to improve."},
		{Title: "Keywords & entities", Description: "Ranked keywords and named entities grouped by type."},
		{Title: "PDF report", Description: "Press d on the results screen to save the backend's formatted report."},
	}
}
