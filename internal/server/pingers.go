package server

import (
	"context"
	"fmt"

	"github.com/hrdesk/hrdesk-go/internal/cache"
	"github.com/hrdesk/hrdesk-go/internal/retrieval"
	"github.com/hrdesk/hrdesk-go/internal/store"
)

// IndexPinger probes a similarity index through its own Ping method.
// It satisfies the Pinger interface and is used by GET /api/ready.
type IndexPinger struct {
	// index is the similarity index to probe.
	index retrieval.SimilarityIndex
	// name identifies the backend in readiness responses (e.g. "chromem").
	name string
}

// NewIndexPinger constructs an IndexPinger for the given index and backend name.
func NewIndexPinger(index retrieval.SimilarityIndex, name string) *IndexPinger {
	return &IndexPinger{index: index, name: name}
}

// Name returns the backend label used in readiness responses.
func (p *IndexPinger) Name() string { return p.name }

// Ping checks the index backend.
func (p *IndexPinger) Ping(ctx context.Context) error {
	if err := p.index.Ping(ctx); err != nil {
		return fmt.Errorf("index unreachable: %w", err)
	}
	return nil
}

// EmbedderPinger probes an embedding backend by embedding a single short
// text. This costs one minimal API call per readiness check.
type EmbedderPinger struct {
	// embedder is the embedding client to probe.
	embedder retrieval.Embedder
	// name identifies the backend in readiness responses (e.g. "ollama").
	name string
}

// NewEmbedderPinger constructs an EmbedderPinger for the given embedder and
// backend name.
func NewEmbedderPinger(e retrieval.Embedder, name string) *EmbedderPinger {
	return &EmbedderPinger{embedder: e, name: name}
}

// Name returns the backend label used in readiness responses.
func (p *EmbedderPinger) Name() string { return p.name }

// Ping sends a one-word embedding request to the backend.
func (p *EmbedderPinger) Ping(ctx context.Context) error {
	vecs, err := p.embedder.Embed(ctx, []string{"ping"})
	if err != nil {
		return fmt.Errorf("embed failed: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return fmt.Errorf("embed returned no vector")
	}
	return nil
}

// CachePinger probes the Redis response cache.
type CachePinger struct {
	// client is the Redis client to probe.
	client *cache.RedisClient
}

// NewCachePinger constructs a CachePinger for the given Redis client.
func NewCachePinger(client *cache.RedisClient) *CachePinger {
	return &CachePinger{client: client}
}

// Name returns the dependency label used in readiness responses.
func (p *CachePinger) Name() string { return "redis" }

// Ping checks Redis reachability.
func (p *CachePinger) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// StorePinger probes the SQLite ticket store.
type StorePinger struct {
	// store is the ticket store to probe.
	store *store.SQLiteStore
}

// NewStorePinger constructs a StorePinger for the given store.
func NewStorePinger(s *store.SQLiteStore) *StorePinger {
	return &StorePinger{store: s}
}

// Name returns the dependency label used in readiness responses.
func (p *StorePinger) Name() string { return "tickets" }

// Ping checks the ticket database.
func (p *StorePinger) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}
