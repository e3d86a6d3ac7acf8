package retrieval

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

// defaultCollection is the chromem collection name when none is configured.
const defaultCollection = "hr-faq"

// ChromemConfig holds settings for the embedded chromem-go index.
type ChromemConfig struct {
	// Path enables write-through persistence under this directory. Empty
	// keeps the index in memory only, rebuilt on every start.
	Path string

	// Collection is the collection name (default "hr-faq").
	Collection string

	// Compress gzips persisted collection files. Ignored without Path.
	Compress bool

	// Embedder supplies embeddings for documents and queries. Required.
	Embedder Embedder
}

// ChromemIndex implements SimilarityIndex with an embedded chromem-go store.
// It runs fully in-process, which makes it the default index: no extra
// service to operate, and rebuilds swap a fresh collection in atomically
// while readers keep querying the previous one.
type ChromemIndex struct {
	db    *chromem.DB
	name  string
	embed chromem.EmbeddingFunc

	mu  sync.RWMutex
	col *chromem.Collection
}

// NewChromemIndex opens (or creates) the chromem store. When Path points at
// an existing persisted collection, the index is queryable immediately;
// otherwise it answers ErrIndexUnavailable until the first Rebuild.
func NewChromemIndex(cfg *ChromemConfig) (*ChromemIndex, error) {
	if cfg == nil || cfg.Embedder == nil {
		return nil, fmt.Errorf("retrieval: chromem: embedder is required")
	}
	name := cfg.Collection
	if name == "" {
		name = defaultCollection
	}

	var (
		db  *chromem.DB
		err error
	)
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("retrieval: chromem: open %q: %w", cfg.Path, err)
		}
	}

	embedder := cfg.Embedder
	embed := func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := embedder.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) != 1 {
			return nil, fmt.Errorf("expected 1 embedding, got %d", len(vecs))
		}
		return vecs[0], nil
	}

	idx := &ChromemIndex{db: db, name: name, embed: embed}
	// Reattach to a previously persisted collection so restarts serve
	// vector answers without re-ingesting.
	if col := db.GetCollection(name, embed); col != nil {
		idx.col = col
	}
	return idx, nil
}

// Rebuild replaces the collection with documents built from the corpus.
// The previous collection stays queryable for in-flight readers until the
// new one is complete and swapped in.
func (x *ChromemIndex) Rebuild(ctx context.Context, c *corpus.Corpus) error {
	docs := make([]chromem.Document, 0, c.Len())
	for _, rec := range c.Records() {
		docs = append(docs, chromem.Document{
			ID:       strconv.Itoa(rec.ID),
			Content:  rec.SearchText(),
			Metadata: map[string]string{"question": rec.Question},
		})
	}

	if err := x.db.DeleteCollection(x.name); err != nil {
		return fmt.Errorf("retrieval: chromem: drop collection %q: %w", x.name, err)
	}
	col, err := x.db.CreateCollection(x.name, nil, x.embed)
	if err != nil {
		return fmt.Errorf("retrieval: chromem: create collection %q: %w", x.name, err)
	}
	if len(docs) > 0 {
		if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return fmt.Errorf("retrieval: chromem: index %d documents: %w", len(docs), err)
		}
	}

	x.mu.Lock()
	x.col = col
	x.mu.Unlock()
	return nil
}

// Query embeds text and returns the k nearest documents. k is clamped to the
// collection size; an empty collection returns no matches.
func (x *ChromemIndex) Query(ctx context.Context, text string, k int) ([]Match, error) {
	x.mu.RLock()
	col := x.col
	x.mu.RUnlock()
	if col == nil {
		return nil, ErrIndexUnavailable
	}

	if n := col.Count(); k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	res, err := col.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieval: chromem query: %w", err)
	}

	matches := make([]Match, 0, len(res))
	for _, r := range res {
		id, err := strconv.Atoi(r.ID)
		if err != nil {
			// Foreign document from an older scheme; skip it.
			continue
		}
		matches = append(matches, Match{ID: id, Similarity: r.Similarity})
	}
	return matches, nil
}

// Ping reports readiness: the store is embedded, so it is ready as soon as a
// collection exists.
func (x *ChromemIndex) Ping(context.Context) error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.col == nil {
		return ErrIndexUnavailable
	}
	return nil
}

// Close releases nothing for the embedded store; it exists to satisfy
// SimilarityIndex.
func (x *ChromemIndex) Close() error { return nil }

// Count returns the number of indexed documents, 0 before the first build.
func (x *ChromemIndex) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.col == nil {
		return 0
	}
	return x.col.Count()
}
