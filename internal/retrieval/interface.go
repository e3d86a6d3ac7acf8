// Package retrieval implements the two candidate rankers behind the HR
// assistant: a keyword scorer that needs nothing but the corpus, and a vector
// ranker that delegates to a pluggable similarity index. Both return explicit
// results and errors; the orchestrator in internal/assistant decides how to
// degrade when they fail.
package retrieval

import (
	"context"
	"errors"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

var (
	// ErrIndexUnavailable indicates the similarity index is missing, closed,
	// or unreachable. The orchestrator fails over to keyword ranking.
	ErrIndexUnavailable = errors.New("similarity index unavailable")

	// ErrNoCandidate indicates a ranker ran successfully but produced no
	// usable candidates. The orchestrator serves a canned topic answer.
	ErrNoCandidate = errors.New("no candidate records")
)

// Method identifies which ranker produced a Result.
type Method string

const (
	MethodVector  Method = "vector"
	MethodKeyword Method = "keyword"
)

// Result is one scored candidate record. Transient, produced per query.
type Result struct {
	// Record is the matched corpus entry.
	Record corpus.Record

	// Score is the ranker-specific score: keyword term-overlap points, or
	// index similarity for the vector path.
	Score float64

	// Method names the ranker that produced this result.
	Method Method
}

// Match is one raw similarity-index hit, referring back to a corpus record
// by its stable ID.
type Match struct {
	// ID is the corpus record ID the indexed document was built from.
	ID int

	// Similarity is the index's similarity score, higher is closer.
	Similarity float32
}

// SimilarityIndex is the external similarity-search capability. The ranker
// treats its ordering as authoritative and never re-ranks. Implementations
// must be safe for concurrent queries; Rebuild may run concurrently with
// queries, which then see either the old or the new contents in full.
type SimilarityIndex interface {
	// Rebuild replaces the indexed documents with the corpus contents.
	// Idempotent: rebuilding from the same corpus yields an equivalent index.
	Rebuild(ctx context.Context, c *corpus.Corpus) error

	// Query returns the k records nearest to text, best first.
	Query(ctx context.Context, text string, k int) ([]Match, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases backing resources.
	Close() error
}

// Embedder converts a batch of texts into dense vector embeddings. The
// returned slice is parallel to the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
