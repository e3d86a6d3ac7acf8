package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

// Keyword scoring weights. Tag matches are the strongest signal (curated
// metadata), question matches beat answer-body matches (body text is noisier).
const (
	questionWeight = 3
	answerWeight   = 2
	tagWeight      = 4
)

// LowScoreThreshold is the keyword score below which a best match is flagged
// low-confidence.
const LowScoreThreshold = 5

// RankKeyword scores every corpus record against the query and returns the
// scoring records best first. The query is lower-cased and split on
// whitespace; each term adds its field weight once per field it appears in
// (case-insensitive substring match). Records scoring zero are excluded.
// Ties keep corpus order.
func RankKeyword(query string, c *corpus.Corpus) []Result {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || c.Len() == 0 {
		return nil
	}

	var results []Result
	for _, rec := range c.Records() {
		question := strings.ToLower(rec.Question)
		answer := strings.ToLower(rec.Answer)
		tags := strings.ToLower(rec.Tags)

		score := 0
		for _, term := range terms {
			if strings.Contains(question, term) {
				score += questionWeight
			}
			if strings.Contains(answer, term) {
				score += answerWeight
			}
			if strings.Contains(tags, term) {
				score += tagWeight
			}
		}
		if score > 0 {
			results = append(results, Result{
				Record: rec,
				Score:  float64(score),
				Method: MethodKeyword,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// KeywordConfidence maps a best keyword score onto [0, 0.8]. The cap keeps
// keyword matches below vector-grade confidence however many terms hit.
func KeywordConfidence(score float64) float64 {
	return math.Min(0.8, score/10)
}
