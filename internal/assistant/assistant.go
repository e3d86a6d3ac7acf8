// Package assistant wires the rankers, sanitizer, and canned-answer
// generators into the question-answering core of the HR desk. The
// Assistant owns the loaded corpus and the similarity index, decides which
// retrieval tier answers a question, and degrades through fallbacks so the
// caller always receives a complete response envelope.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/hrdesk/hrdesk-go/internal/answers"
	"github.com/hrdesk/hrdesk-go/internal/cache"
	"github.com/hrdesk/hrdesk-go/internal/corpus"
	"github.com/hrdesk/hrdesk-go/internal/logging"
	"github.com/hrdesk/hrdesk-go/internal/retrieval"
	"github.com/hrdesk/hrdesk-go/internal/sanitize"
)

// ErrRebuildInProgress reports that another rebuild is already running.
var ErrRebuildInProgress = errors.New("rebuild already in progress")

// defaultTopK is the number of vector candidates requested per query.
const defaultTopK = 5

// defaultCacheTTL bounds cached response envelopes.
const defaultCacheTTL = 5 * time.Minute

// snapshot pairs a loaded corpus with the index generation built from it.
// Queries load one snapshot and never observe a half-rebuilt state.
type snapshot struct {
	corpus *corpus.Corpus
}

// Config holds the dependencies required to construct an Assistant.
type Config struct {
	// Source provides the FAQ dataset rows.
	Source corpus.Source

	// Index is the optional similarity index backing the vector tier.
	// May be nil for keyword-only operation.
	Index retrieval.SimilarityIndex

	// TopK is the number of vector candidates per query. Defaults to 5.
	TopK int

	// Cache is the optional response cache. May be nil.
	Cache cache.Client

	// CacheTTL bounds cached envelopes. Defaults to 5 minutes.
	CacheTTL time.Duration
}

// Assistant answers HR questions from the loaded corpus. It is safe for
// concurrent use; Rebuild swaps the corpus atomically under live traffic.
type Assistant struct {
	// current is the active corpus snapshot.
	current atomic.Pointer[snapshot]

	// source reloads the dataset on Rebuild.
	source corpus.Source

	// index backs the vector tier; nil disables it.
	index retrieval.SimilarityIndex

	// vector ranks candidates through index; nil disables the vector tier.
	vector *retrieval.VectorRanker

	// topK is the number of vector candidates per query.
	topK int

	// cache short-circuits repeated questions; nil disables caching.
	cache cache.Client

	// cacheTTL bounds cached envelopes.
	cacheTTL time.Duration

	// rebuilding guards against concurrent rebuilds.
	rebuilding atomic.Bool
}

// New constructs an Assistant and performs the initial corpus load. A
// dataset that cannot be loaded is fatal here; an index that cannot be
// built is not — the vector tier fails over to keyword search at query
// time, so startup continues with a warning.
func New(ctx context.Context, cfg *Config) (*Assistant, error) {
	a, err := NewDeferred(cfg)
	if err != nil {
		return nil, err
	}

	c, err := corpus.Load(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}

	if a.index != nil {
		if err := a.index.Rebuild(ctx, c); err != nil {
			logging.FromContext(ctx).Warn("assistant: index build failed, continuing with keyword search only",
				slog.Any("error", err))
		}
	}

	a.current.Store(&snapshot{corpus: c})
	return a, nil
}

// NewDeferred constructs an Assistant without the initial corpus load.
// Queries answer with the unavailable envelope until a rebuild succeeds,
// which lets the server start before the dataset exists and be brought to
// readiness through ingestion later.
func NewDeferred(cfg *Config) (*Assistant, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("assistant: Source must not be nil")
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	a := &Assistant{
		source:   cfg.Source,
		index:    cfg.Index,
		topK:     topK,
		cache:    cfg.Cache,
		cacheTTL: ttl,
	}
	if cfg.Index != nil {
		a.vector = retrieval.NewVectorRanker(cfg.Index)
	}
	return a, nil
}

// Search answers a question. It never returns an error: every internal
// failure degrades into a well-formed envelope with a fallback answer.
func (a *Assistant) Search(ctx context.Context, question string, topK int) (resp *Response) {
	question = strings.TrimSpace(question)
	if topK <= 0 {
		topK = a.topK
	}

	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("assistant: search panicked",
				slog.Any("panic", r), slog.String("question", question))
			resp = a.fallbackResponse(question, MethodFallbackError)
			finalize(question, resp)
		}
	}()

	if cached, found := a.cachedResponse(ctx, question, topK); found {
		return cached
	}

	resp = a.answer(ctx, question, topK)
	finalize(question, resp)
	a.storeCached(ctx, question, topK, resp)
	return resp
}

// answer runs the tiered retrieval state machine and returns an envelope
// that has not yet been finalized.
func (a *Assistant) answer(ctx context.Context, question string, topK int) *Response {
	snap := a.current.Load()
	if snap == nil {
		return unavailableResponse()
	}
	if snap.corpus.Len() == 0 {
		return a.fallbackResponse(question, MethodFallbackEmpty)
	}

	if a.vector != nil && a.vector.Available() {
		resp, retry := a.vectorAnswer(ctx, question, snap.corpus, topK)
		if !retry {
			return resp
		}
	}
	return a.keywordAnswer(question, snap.corpus)
}

// vectorAnswer runs the vector tier. retry reports that the keyword tier
// should be tried instead.
func (a *Assistant) vectorAnswer(ctx context.Context, question string, c *corpus.Corpus, topK int) (resp *Response, retry bool) {
	results, err := a.vector.Rank(ctx, question, c, topK)
	switch {
	case err == nil:
	case errors.Is(err, retrieval.ErrNoCandidate):
		// The index holds nothing usable for this query.
		return a.fallbackResponse(question, MethodFallbackEmpty), false
	default:
		logging.FromContext(ctx).Warn("assistant: vector search failed, falling back to keyword search",
			slog.Any("error", err))
		return nil, true
	}

	answer := sanitize.Clean(results[0].Record.Answer)
	if utf8.RuneCountInString(answer) < minAnswerRunes || sanitize.Leaky(answer) {
		return a.fallbackResponse(question, MethodFallbackRejected), false
	}

	return &Response{
		Answer:            answer,
		ConfidenceScore:   vectorConfidence,
		ConfidenceMessage: "High Confidence",
		RetrievalMethod:   MethodVector,
	}, false
}

// keywordAnswer runs the keyword tier over the whole corpus.
func (a *Assistant) keywordAnswer(question string, c *corpus.Corpus) *Response {
	results := retrieval.RankKeyword(question, c)
	if len(results) == 0 {
		return noResultsResponse(question)
	}

	best := results[0]
	answer := sanitize.Clean(best.Record.Answer)
	if utf8.RuneCountInString(answer) < minAnswerRunes || sanitize.Leaky(answer) {
		return a.fallbackResponse(question, MethodFallbackRejected)
	}

	low := best.Score < retrieval.LowScoreThreshold
	return &Response{
		Answer:            answer,
		Sources:           []Source{{Text: best.Record.Question, Similarity: keywordSourceSimilarity}},
		ConfidenceScore:   retrieval.KeywordConfidence(best.Score),
		IsLowConfidence:   low,
		ConfidenceMessage: "Keyword search",
		RetrievalMethod:   MethodKeyword,
		ShowTicketButton:  low,
	}
}

// fallbackResponse builds the canned-topic envelope for the given fallback
// tier. The error tier carries a lower confidence and always offers the
// ticket button.
func (a *Assistant) fallbackResponse(question, method string) *Response {
	resp := &Response{
		Answer:            answers.Fallback(question),
		ConfidenceScore:   fallbackConfidence,
		ConfidenceMessage: "Standard Response",
		RetrievalMethod:   method,
	}
	if method == MethodFallbackError {
		resp.ConfidenceScore = errorFallbackConfidence
		resp.ShowTicketButton = true
	}
	return resp
}

// noResultsResponse is the keyword tier's zero-match envelope.
func noResultsResponse(question string) *Response {
	return &Response{
		Answer:            answers.NoResults(question),
		ConfidenceScore:   noResultsConfidence,
		IsLowConfidence:   true,
		ConfidenceMessage: "No matching information",
		RetrievalMethod:   MethodNoResults,
		ShowTicketButton:  true,
	}
}

// unavailableResponse covers requests that arrive before any dataset has
// been loaded.
func unavailableResponse() *Response {
	return &Response{
		Answer: "**Knowledge Base Unavailable**\n\nThe HR knowledge base has not been loaded. " +
			"Please try again shortly or contact your system administrator.",
		ConfidenceScore:   0,
		IsLowConfidence:   true,
		ConfidenceMessage: "Dataset missing",
		RetrievalMethod:   MethodError,
		ShowTicketButton:  true,
	}
}

// finalize applies the sanitizer to the outgoing answer as a
// defense-in-depth pass, fills in suggestions, and normalizes the
// confidence label. Every envelope leaves through here.
func finalize(question string, resp *Response) {
	resp.Answer = sanitize.Clean(resp.Answer)
	if len(resp.Suggestions) == 0 {
		resp.Suggestions = answers.Suggest(question)
	}
	if resp.Sources == nil {
		resp.Sources = []Source{}
	}
	resp.ConfidenceMessage = normalizeConfidenceMessage(resp.RetrievalMethod, resp.ConfidenceMessage)
}

// Rebuild reloads the dataset from the configured source, rebuilds the
// similarity index, and swaps the active snapshot. In-flight queries keep the
// old snapshot until the swap; the response cache is invalidated afterwards.
// Only one rebuild runs at a time — concurrent calls fail fast with
// ErrRebuildInProgress.
func (a *Assistant) Rebuild(ctx context.Context) (int, error) {
	return a.RebuildFrom(ctx, nil)
}

// RebuildFrom is Rebuild with an explicit source. A nil src reuses the
// configured one; a non-nil src also becomes the source for later rebuilds.
func (a *Assistant) RebuildFrom(ctx context.Context, src corpus.Source) (int, error) {
	if !a.rebuilding.CompareAndSwap(false, true) {
		return 0, ErrRebuildInProgress
	}
	defer a.rebuilding.Store(false)

	if src == nil {
		src = a.source
	}

	c, err := corpus.Load(ctx, src)
	if err != nil {
		return 0, err
	}
	// source is only touched under the rebuilding guard after construction.
	a.source = src

	if a.index != nil {
		if err := a.index.Rebuild(ctx, c); err != nil {
			return 0, fmt.Errorf("assistant: index rebuild: %w", err)
		}
	}

	a.current.Store(&snapshot{corpus: c})
	a.invalidateCache(ctx)
	return c.Len(), nil
}

// Rebuilding reports whether a rebuild is currently running.
func (a *Assistant) Rebuilding() bool {
	return a.rebuilding.Load()
}

// Ready reports whether a corpus snapshot has been loaded.
func (a *Assistant) Ready() bool {
	return a.current.Load() != nil
}

// CorpusSize returns the number of records in the active snapshot.
func (a *Assistant) CorpusSize() int {
	if snap := a.current.Load(); snap != nil {
		return snap.corpus.Len()
	}
	return 0
}

// DroppedRecords returns how many malformed rows the active snapshot
// skipped at load time.
func (a *Assistant) DroppedRecords() int {
	if snap := a.current.Load(); snap != nil {
		return snap.corpus.Dropped()
	}
	return 0
}

// VectorReady reports whether the vector tier can serve queries right now.
func (a *Assistant) VectorReady(ctx context.Context) bool {
	if a.index == nil {
		return false
	}
	return a.index.Ping(ctx) == nil
}

// cacheKey derives the cache key for a question at a given candidate depth.
func cacheKey(question string, topK int) string {
	return cache.Key(cache.QuestionKey(question), "k"+strconv.Itoa(topK))
}

// cachedResponse returns a previously cached envelope for the question.
func (a *Assistant) cachedResponse(ctx context.Context, question string, topK int) (*Response, bool) {
	if a.cache == nil {
		return nil, false
	}

	raw, err := a.cache.Get(ctx, cacheKey(question, topK))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false
	}
	if err != nil {
		logging.FromContext(ctx).Warn("assistant: cache read failed", slog.Any("error", err))
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		logging.FromContext(ctx).Warn("assistant: dropping undecodable cache entry", slog.Any("error", err))
		_ = a.cache.Delete(ctx, cacheKey(question, topK))
		return nil, false
	}
	return &resp, true
}

// storeCached writes the envelope to the cache. Envelopes produced by a
// transient failure are not cached so the next attempt retries the full
// pipeline.
func (a *Assistant) storeCached(ctx context.Context, question string, topK int, resp *Response) {
	if a.cache == nil {
		return
	}
	if resp.RetrievalMethod == MethodFallbackError || resp.RetrievalMethod == MethodError {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, cacheKey(question, topK), raw, a.cacheTTL); err != nil {
		logging.FromContext(ctx).Warn("assistant: cache write failed", slog.Any("error", err))
	}
}

// invalidateCache drops all cached answers after a corpus swap.
func (a *Assistant) invalidateCache(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.DeleteByPrefix(ctx, "answers:"); err != nil {
		logging.FromContext(ctx).Warn("assistant: cache invalidation failed", slog.Any("error", err))
	}
}
