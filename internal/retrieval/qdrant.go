package retrieval

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

// upsertBatch is how many records are embedded and upserted per round trip
// during a rebuild.
const upsertBatch = 64

// QdrantConfig holds connection parameters for a Qdrant-backed index.
type QdrantConfig struct {
	// Host is the Qdrant server hostname (default: localhost).
	Host string

	// Port is the Qdrant gRPC port (default: 6334).
	Port int

	// Collection is the Qdrant collection name (default: hrdesk-faq).
	Collection string

	// VectorSize is the dimensionality of the stored embeddings.
	VectorSize uint64

	// APIKey is the optional Qdrant API key for authenticated clusters.
	APIKey string

	// UseTLS enables TLS for the gRPC connection.
	UseTLS bool
}

// QdrantIndex implements SimilarityIndex backed by a Qdrant instance. Points
// carry the corpus record ID as their numeric point ID, so query hits map
// straight back to records. Unlike the embedded index, a rebuild mutates the
// shared remote collection; queries racing a rebuild fail over to keyword
// ranking via the normal error path.
type QdrantIndex struct {
	client   *qdrant.Client
	cfg      *QdrantConfig
	embedder Embedder
}

// NewQdrantIndex connects to Qdrant and ensures the target collection
// exists.
func NewQdrantIndex(ctx context.Context, cfg *QdrantConfig, embedder Embedder) (*QdrantIndex, error) {
	if embedder == nil {
		return nil, fmt.Errorf("retrieval: qdrant: embedder is required")
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.Collection == "" {
		cfg.Collection = "hrdesk-faq"
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval: qdrant: create client: %w", err)
	}

	idx := &QdrantIndex{client: client, cfg: cfg, embedder: embedder}
	if err := idx.createCollection(ctx, false); err != nil {
		return nil, err
	}
	return idx, nil
}

// createCollection creates the collection if absent. With recreate set, an
// existing collection is dropped first so a rebuild starts from empty.
func (x *QdrantIndex) createCollection(ctx context.Context, recreate bool) error {
	exists, err := x.client.CollectionExists(ctx, x.cfg.Collection)
	if err != nil {
		return fmt.Errorf("retrieval: qdrant: check collection: %w", err)
	}
	if exists {
		if !recreate {
			return nil
		}
		if err := x.client.DeleteCollection(ctx, x.cfg.Collection); err != nil {
			return fmt.Errorf("retrieval: qdrant: drop collection %q: %w", x.cfg.Collection, err)
		}
	}

	err = x.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: x.cfg.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     x.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("retrieval: qdrant: create collection %q: %w", x.cfg.Collection, err)
	}
	return nil
}

// Rebuild recreates the collection and upserts every corpus record, embedding
// in batches.
func (x *QdrantIndex) Rebuild(ctx context.Context, c *corpus.Corpus) error {
	if err := x.createCollection(ctx, true); err != nil {
		return err
	}

	recs := c.Records()
	for start := 0; start < len(recs); start += upsertBatch {
		end := min(start+upsertBatch, len(recs))
		batch := recs[start:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = rec.SearchText()
		}
		vectors, err := x.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("retrieval: qdrant: embed batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("retrieval: qdrant: embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		points := make([]*qdrant.PointStruct, len(batch))
		for i, rec := range batch {
			points[i] = &qdrant.PointStruct{
				Id:      qdrant.NewIDNum(uint64(rec.ID)),
				Vectors: qdrant.NewVectors(vectors[i]...),
				Payload: qdrant.NewValueMap(map[string]any{
					"question": rec.Question,
				}),
			}
		}

		if _, err := x.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: x.cfg.Collection,
			Points:         points,
		}); err != nil {
			return fmt.Errorf("retrieval: qdrant: upsert batch at %d: %w", start, err)
		}
	}

	return nil
}

// Query embeds text and runs a cosine similarity search.
func (x *QdrantIndex) Query(ctx context.Context, text string, k int) ([]Match, error) {
	vecs, err := x.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("retrieval: qdrant: embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("retrieval: qdrant: expected 1 query embedding, got %d", len(vecs))
	}

	limit := uint64(k)
	points, err := x.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: x.cfg.Collection,
		Query:          qdrant.NewQuery(vecs[0]...),
		Limit:          &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval: qdrant: search: %w", err)
	}

	matches := make([]Match, 0, len(points))
	for _, p := range points {
		matches = append(matches, Match{
			ID:         int(p.Id.GetNum()),
			Similarity: p.Score,
		})
	}
	return matches, nil
}

// Ping checks the Qdrant health endpoint.
func (x *QdrantIndex) Ping(ctx context.Context) error {
	if _, err := x.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying gRPC connection.
func (x *QdrantIndex) Close() error {
	return x.client.Close()
}
