package corpus

import (
	"context"
	"strings"
)

// boilerplatePrefix marks answers that captured a retrieval prompt instead of
// real content. Rows carrying it are not trustworthy and are dropped.
const boilerplatePrefix = "According to our HR materials:"

// contextMarker inside an answer means raw prompt context leaked into the
// dataset row.
const contextMarker = "Context:"

// Load reads all rows from src and returns the validated corpus. Rows with an
// empty question or answer, or whose answer carries leaked template content,
// are dropped and counted; they never make a load fail. Only a source-level
// failure (wrapping ErrDataUnavailable) is returned as an error.
func Load(ctx context.Context, src Source) (*Corpus, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}

	c := &Corpus{records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		if !usable(row) {
			c.dropped++
			continue
		}
		c.records = append(c.records, Record{
			ID:       len(c.records),
			Question: row.Question,
			Answer:   row.Answer,
			Tags:     row.Tags,
		})
	}

	return c, nil
}

// usable reports whether a row survives validation: both core fields present
// and no leaked template content in the answer.
func usable(row Row) bool {
	if row.Question == "" || row.Answer == "" {
		return false
	}
	if strings.HasPrefix(row.Answer, boilerplatePrefix) {
		return false
	}
	if strings.Contains(row.Answer, contextMarker) {
		return false
	}
	return true
}
