package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

// defaultQueryTimeout bounds a single similarity-index query. A slow index
// is treated the same as a down index: the caller fails over to keyword
// ranking rather than keeping the user waiting.
const defaultQueryTimeout = 5 * time.Second

// VectorRanker retrieves candidates through a SimilarityIndex. The index's
// ordering is authoritative; the ranker only resolves hits back to corpus
// records.
type VectorRanker struct {
	index   SimilarityIndex
	timeout time.Duration
}

// NewVectorRanker wraps index with the default query timeout. index may be
// nil, in which case every Rank call reports ErrIndexUnavailable.
func NewVectorRanker(index SimilarityIndex) *VectorRanker {
	return &VectorRanker{index: index, timeout: defaultQueryTimeout}
}

// WithTimeout overrides the per-query timeout. Zero or negative keeps the
// default.
func (r *VectorRanker) WithTimeout(d time.Duration) *VectorRanker {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Available reports whether a similarity index is configured.
func (r *VectorRanker) Available() bool {
	return r != nil && r.index != nil
}

// Rank queries the index for the topK nearest records. It returns
// ErrIndexUnavailable when no index is configured, ErrNoCandidate when the
// index answered with zero hits, and a wrapped index error otherwise.
// Hits that no longer resolve to a corpus record (stale index entries) are
// skipped; if none resolve, that is ErrNoCandidate as well.
func (r *VectorRanker) Rank(ctx context.Context, query string, c *corpus.Corpus, topK int) ([]Result, error) {
	if !r.Available() {
		return nil, ErrIndexUnavailable
	}
	if topK <= 0 {
		topK = 5
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	matches, err := r.index.Query(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval: vector query: %w", err)
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		rec, ok := c.At(m.ID)
		if !ok {
			continue
		}
		results = append(results, Result{
			Record: rec,
			Score:  float64(m.Similarity),
			Method: MethodVector,
		})
	}
	if len(results) == 0 {
		return nil, ErrNoCandidate
	}
	return results, nil
}
