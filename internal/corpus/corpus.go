// Package corpus loads the HR FAQ dataset into an immutable in-memory
// collection of question/answer records. The corpus is rebuilt wholesale on
// ingest; it is never patched in place, so a *Corpus handed to a reader is
// safe for unlimited concurrent use.
package corpus

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable indicates the dataset could not be opened or parsed at
// all. Callers treat this as fatal at startup and recoverable via a later
// rebuild.
var ErrDataUnavailable = errors.New("dataset unavailable")

// Record is one FAQ entry. Question and Answer are non-empty after load;
// rows failing that are dropped by Load, never stored.
type Record struct {
	// ID is the record's stable position in the corpus (0-based). Vector
	// index entries refer back to records by this ID.
	ID int

	// Question is the canonical question text.
	Question string

	// Answer is the short answer text shown to users after sanitizing.
	Answer string

	// Tags holds comma-separated free-text labels; may be empty.
	Tags string
}

// SearchText returns the text block indexed for similarity search. Keeping
// question, answer and tags together mirrors how the dataset was embedded
// historically, so rebuilt indexes rank the same way.
func (r Record) SearchText() string {
	return fmt.Sprintf("Question: %s\nAnswer: %s\nTags: %s", r.Question, r.Answer, r.Tags)
}

// Corpus is an ordered, immutable set of Records.
type Corpus struct {
	records []Record
	dropped int
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the record at position id. ok is false when id is out of range.
func (c *Corpus) At(id int) (Record, bool) {
	if c == nil || id < 0 || id >= len(c.records) {
		return Record{}, false
	}
	return c.records[id], true
}

// Records returns the backing slice. Callers must treat it as read-only.
func (c *Corpus) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}

// Dropped reports how many source rows were rejected during load (missing
// fields or leaked template content).
func (c *Corpus) Dropped() int {
	if c == nil {
		return 0
	}
	return c.dropped
}
