package assistant

import (
	"strings"
	"unicode"
)

// Retrieval method tags carried in the response envelope. The fallback tiers
// are distinguished by cause so operators can tell an empty index apart from
// a rejected answer or an internal failure.
const (
	MethodVector           = "vector"
	MethodKeyword          = "keyword"
	MethodFallbackEmpty    = "fallback_empty"
	MethodFallbackRejected = "fallback_rejected"
	MethodFallbackError    = "fallback_error"
	MethodNoResults        = "no_results"
	MethodError            = "error"
	MethodContactFlow      = "contact_flow"
)

// Confidence constants and validation thresholds. These are hand-tuned
// heuristics inherited from production behaviour; keep them named rather
// than deriving a different scoring model.
const (
	// vectorConfidence is reported when the vector tier accepts an answer.
	vectorConfidence = 0.95
	// fallbackConfidence is reported by the no-candidates and
	// rejected-answer fallback tiers.
	fallbackConfidence = 0.85
	// errorFallbackConfidence is reported when an internal failure forced
	// the fallback tier.
	errorFallbackConfidence = 0.8
	// noResultsConfidence is reported when keyword search matched nothing.
	noResultsConfidence = 0.3
	// minAnswerRunes is the shortest sanitized answer accepted from a
	// corpus record before the fallback tier takes over.
	minAnswerRunes = 20
	// keywordSourceSimilarity is the nominal similarity attached to the
	// single source of a keyword match.
	keywordSourceSimilarity = 0.75
)

// Source identifies a corpus entry that contributed to an answer.
type Source struct {
	// Text is the canonical question of the matched record.
	Text string `json:"text"`
	// Similarity is the match strength in [0,1].
	Similarity float64 `json:"similarity"`
}

// Response is the envelope returned for every question. It is constructed
// fresh per request and always complete: callers never see a raw error.
type Response struct {
	Answer            string   `json:"answer"`
	Sources           []Source `json:"sources"`
	Suggestions       []string `json:"suggestions"`
	ConfidenceScore   float64  `json:"confidence_score"`
	IsLowConfidence   bool     `json:"is_low_confidence"`
	ConfidenceMessage string   `json:"confidence_message"`
	RetrievalMethod   string   `json:"retrieval_method"`
	ShowTicketButton  bool     `json:"show_ticket_button"`
}

// normalizeConfidenceMessage derives the user-facing confidence label from
// the retrieval method. Unknown methods keep their preset label, stripped of
// any non-ASCII decoration.
func normalizeConfidenceMessage(method, preset string) string {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "vector"), strings.Contains(m, "semantic"):
		return "High confidence (vector search)"
	case strings.Contains(m, "keyword"):
		return "Keyword search"
	case strings.Contains(m, "no_results"):
		return "No matching information"
	case strings.Contains(m, "error"):
		return "Processing error"
	}

	cleaned := strings.TrimSpace(stripDecoration(preset))
	if cleaned == "" {
		return "Response"
	}
	return cleaned
}

// stripDecoration removes emoji and other non-ASCII runes from a label.
func stripDecoration(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// contactAnswer is the static capability overview returned by the HR contact
// flow.
const contactAnswer = `**HR Assistant**

I answer questions about company HR policies using the FAQ knowledge base.

**I Can Help With:**
• Leave policies and vacation planning
• Medical benefits and insurance coverage
• Salary structures and allowances
• Training and development opportunities
• Travel policies and expense claims
• Performance reviews and career guidance

**Need Personal Help?**
For complex issues requiring human attention, I can create an HR ticket that routes directly to our specialists.

**What would you like to know?**`

// ContactResponse returns the canned envelope for the HR contact flow. The
// ticket button is always shown so the caller can escalate immediately.
func ContactResponse() *Response {
	return &Response{
		Answer:  contactAnswer,
		Sources: []Source{},
		Suggestions: []string{
			"How many vacation days do I get?",
			"What are my medical benefits?",
			"How do I submit expense claims?",
			"Create an HR ticket for personal help",
		},
		ConfidenceScore:   1.0,
		ConfidenceMessage: "HR Assistant ready",
		RetrievalMethod:   MethodContactFlow,
		ShowTicketButton:  true,
	}
}
