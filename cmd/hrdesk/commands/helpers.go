package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hrdesk/hrdesk-go/internal/cache"
	"github.com/hrdesk/hrdesk-go/internal/corpus"
	"github.com/hrdesk/hrdesk-go/internal/embedder"
	"github.com/hrdesk/hrdesk-go/internal/retrieval"
	"github.com/hrdesk/hrdesk-go/internal/server"
	"github.com/hrdesk/hrdesk-go/internal/store"
)

// defaultDatasetPath is used when DATASET_PATH is not set.
const defaultDatasetPath = "data/hr_faq.csv"

// buildSource returns the CSV source for the dataset. An explicit override
// (e.g. from an --dataset flag) wins over DATASET_PATH.
func buildSource(override string) *corpus.CSVSource {
	path := override
	if path == "" {
		path = getEnvOrDefault("DATASET_PATH", defaultDatasetPath)
	}
	return corpus.NewCSVSource(path)
}

// buildIndex constructs the similarity index selected by INDEX_PROVIDER
// (chromem, qdrant, none) together with the embedder backing it. Both return
// values are nil when vector search is disabled. The caller must invoke the
// returned cleanup func on shutdown.
func buildIndex(ctx context.Context, log *slog.Logger) (retrieval.SimilarityIndex, retrieval.Embedder, func(), error) {
	provider := getEnvOrDefault("INDEX_PROVIDER", "chromem")
	noop := func() {}

	if provider == "none" {
		log.Info("vector search disabled", slog.String("index_provider", "none"))
		return nil, nil, noop, nil
	}

	if err := embedder.ValidateForSearch(log); err != nil {
		return nil, nil, noop, err
	}
	emb, err := embedder.NewFromEnv()
	if err != nil {
		return nil, nil, noop, fmt.Errorf("failed to initialise embedder: %w", err)
	}

	switch provider {
	case "chromem":
		idx, err := retrieval.NewChromemIndex(&retrieval.ChromemConfig{
			Path:       os.Getenv("CHROMEM_PATH"),
			Collection: os.Getenv("INDEX_COLLECTION"),
			Embedder:   emb,
		})
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to open chromem index: %w", err)
		}
		return idx, emb, func() { _ = idx.Close() }, nil

	case "qdrant":
		embBackend := getEnvOrDefault("EMBEDDING_PROVIDER", "ollama")
		vectorSize := uint64(embedder.DefaultDimensions(embBackend)) //nolint:gosec // dimensions are bounded
		if dims := getEnvInt("EMBEDDING_DIMENSIONS", 0); dims > 0 {
			vectorSize = uint64(dims) //nolint:gosec // dimensions are bounded
		}

		host := getEnvOrDefault("QDRANT_HOST", "localhost")
		port := getEnvInt("QDRANT_PORT", 6334)
		idx, err := retrieval.NewQdrantIndex(ctx, &retrieval.QdrantConfig{
			Host:       host,
			Port:       port,
			Collection: os.Getenv("INDEX_COLLECTION"),
			VectorSize: vectorSize,
			APIKey:     os.Getenv("QDRANT_API_KEY"),
			UseTLS:     os.Getenv("QDRANT_TLS") == "true",
		}, emb)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to connect to Qdrant at %s:%d: %w", host, port, err)
		}
		return idx, emb, func() { _ = idx.Close() }, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown INDEX_PROVIDER %q (want chromem, qdrant, or none)", provider)
	}
}

// buildCache returns the response cache: Redis when REDIS_ADDR is set,
// otherwise an in-process cache. The *cache.RedisClient is non-nil only for
// the Redis case so the caller can wire a readiness probe for it.
func buildCache(log *slog.Logger) (cache.Client, *cache.RedisClient, func()) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		mc := cache.NewMemoryClient(0)
		log.Info("cache: using in-memory cache", slog.String("reason", "REDIS_ADDR not set"))
		return mc, nil, func() { _ = mc.Close() }
	}

	rc, err := cache.NewRedisClient(cache.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	})
	if err != nil {
		log.Warn("cache: Redis unreachable, using in-memory cache",
			slog.String("addr", addr), slog.Any("error", err))
		mc := cache.NewMemoryClient(0)
		return mc, nil, func() { _ = mc.Close() }
	}

	log.Info("cache: connected to Redis", slog.String("addr", addr))
	return rc, rc, func() { _ = rc.Close() }
}

// buildTicketStore opens the SQLite ticket store. TICKETS_DB overrides the
// default path (~/.hrdesk/tickets.db); "disabled" turns ticketing off.
// Failures disable ticketing with a warning rather than aborting startup.
func buildTicketStore(log *slog.Logger) (*store.SQLiteStore, func()) {
	noop := func() {}

	dbPath := os.Getenv("TICKETS_DB")
	if dbPath == "disabled" {
		log.Info("tickets: disabled via TICKETS_DB=disabled")
		return nil, noop
	}
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			log.Warn("tickets: could not resolve default DB path, disabling", slog.Any("error", err))
			return nil, noop
		}
		dbPath = p
	}

	ts, err := store.Open(dbPath)
	if err != nil {
		log.Warn("tickets: failed to open store, disabling", slog.Any("error", err))
		return nil, noop
	}
	log.Info("tickets: store opened", slog.String("path", dbPath))
	return ts, func() { _ = ts.Close() }
}

// buildPingers assembles the readiness probes for the dependencies that are
// actually wired. Nil dependencies contribute no probe.
func buildPingers(index retrieval.SimilarityIndex, emb retrieval.Embedder, redisClient *cache.RedisClient, tickets *store.SQLiteStore) []server.Pinger {
	var pingers []server.Pinger
	if index != nil {
		pingers = append(pingers, server.NewIndexPinger(index, getEnvOrDefault("INDEX_PROVIDER", "chromem")))
	}
	if emb != nil {
		pingers = append(pingers, server.NewEmbedderPinger(emb, "embedder"))
	}
	if redisClient != nil {
		pingers = append(pingers, server.NewCachePinger(redisClient))
	}
	if tickets != nil {
		pingers = append(pingers, server.NewStorePinger(tickets))
	}
	return pingers
}

// cacheTTL parses CACHE_TTL as a duration, returning 0 (use default) when
// unset or invalid.
func cacheTTL(log *slog.Logger) time.Duration {
	raw := os.Getenv("CACHE_TTL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn("invalid CACHE_TTL, using default", slog.String("value", raw))
		return 0
	}
	return d
}

// getEnvOrDefault returns the env var value, or def when unset or empty.
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the env var parsed as an int, or def when unset or
// unparseable.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// getEnvFloat returns the env var parsed as a float64, or def when unset or
// unparseable.
func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
