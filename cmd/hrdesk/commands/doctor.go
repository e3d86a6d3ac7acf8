package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrdesk/hrdesk-go/internal/cache"
	"github.com/hrdesk/hrdesk-go/internal/corpus"
	"github.com/hrdesk/hrdesk-go/internal/logging"
	"github.com/hrdesk/hrdesk-go/internal/store"
)

// probeTimeout bounds each reachability check so a hung dependency cannot
// stall the whole diagnosis.
const probeTimeout = 5 * time.Second

// checkResult is one row of the diagnosis table.
type checkResult struct {
	status string // "pass", "warn", "fail"
	name   string
	detail string
}

// NewDoctorCmd constructs the `hrdesk doctor` command, which diagnoses the
// local environment and prints a pass/warn/fail table.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the hrdesk environment",
		Long: `Check the local environment: config file resolution, dataset presence
and row count, embedder reachability, similarity index reachability,
ticket store, and response cache.

Exits non-zero when any check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.NewFromEnv()
			ctx = logging.WithLogger(ctx, log)

			checks := []checkResult{
				checkConfig(),
				checkDataset(ctx),
			}
			checks = append(checks, checkVectorSearch(ctx)...)
			checks = append(checks, checkTickets(ctx), checkCache(ctx))

			failed := 0
			for _, c := range checks {
				fmt.Printf("%-5s %-14s %s\n", c.status, c.name, c.detail)
				if c.status == "fail" {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("doctor: %d check(s) failed", failed)
			}
			return nil
		},
	}
}

// checkConfig reports which YAML config file was resolved, if any.
func checkConfig() checkResult {
	if loadedConfigPath == "" {
		return checkResult{"pass", "config", "no YAML config file, using env vars only"}
	}
	return checkResult{"pass", "config", "loaded " + loadedConfigPath}
}

// checkDataset verifies the dataset exists and counts its usable rows.
func checkDataset(ctx context.Context) checkResult {
	src := buildSource("")
	if _, err := os.Stat(src.Path()); err != nil {
		return checkResult{"fail", "dataset", fmt.Sprintf("%s: %v", src.Path(), err)}
	}

	c, err := corpus.Load(ctx, src)
	if err != nil {
		return checkResult{"fail", "dataset", fmt.Sprintf("%s: %v", src.Path(), err)}
	}

	detail := fmt.Sprintf("%s: %d records", src.Path(), c.Len())
	if c.Dropped() > 0 {
		detail += fmt.Sprintf(" (%d malformed rows dropped)", c.Dropped())
		return checkResult{"warn", "dataset", detail}
	}
	return checkResult{"pass", "dataset", detail}
}

// checkVectorSearch probes the embedder and the similarity index. With
// INDEX_PROVIDER=none both are intentionally absent, which is a warn, not a
// fail — keyword search still works.
func checkVectorSearch(ctx context.Context) []checkResult {
	provider := getEnvOrDefault("INDEX_PROVIDER", "chromem")
	if provider == "none" {
		return []checkResult{
			{"warn", "embedder", "vector search disabled (INDEX_PROVIDER=none)"},
			{"warn", "index", "vector search disabled (INDEX_PROVIDER=none)"},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	index, emb, closeIndex, err := buildIndex(ctx, logging.FromContext(ctx))
	if err != nil {
		return []checkResult{
			{"fail", "embedder", err.Error()},
			{"fail", "index", "not checked (embedder or index construction failed)"},
		}
	}
	defer closeIndex()

	var out []checkResult

	backend := getEnvOrDefault("EMBEDDING_PROVIDER", "ollama")
	if _, err := emb.Embed(ctx, []string{"ping"}); err != nil {
		out = append(out, checkResult{"fail", "embedder", fmt.Sprintf("%s: %v", backend, err)})
	} else {
		out = append(out, checkResult{"pass", "embedder", backend + ": reachable"})
	}

	if err := index.Ping(ctx); err != nil {
		// The embedded index reports unavailable until first build — that
		// is a state, not a broken environment.
		if provider == "chromem" {
			out = append(out, checkResult{"warn", "index", fmt.Sprintf("chromem: %v", err)})
		} else {
			out = append(out, checkResult{"fail", "index", fmt.Sprintf("%s: %v", provider, err)})
		}
	} else {
		out = append(out, checkResult{"pass", "index", provider + ": reachable"})
	}

	return out
}

// checkTickets verifies the SQLite ticket store opens and responds.
func checkTickets(ctx context.Context) checkResult {
	dbPath := os.Getenv("TICKETS_DB")
	if dbPath == "disabled" {
		return checkResult{"warn", "tickets", "disabled via TICKETS_DB=disabled"}
	}
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return checkResult{"fail", "tickets", err.Error()}
		}
		dbPath = p
	}

	ts, err := store.Open(dbPath)
	if err != nil {
		return checkResult{"fail", "tickets", fmt.Sprintf("%s: %v", dbPath, err)}
	}
	defer ts.Close()

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := ts.Ping(ctx); err != nil {
		return checkResult{"fail", "tickets", fmt.Sprintf("%s: %v", dbPath, err)}
	}
	return checkResult{"pass", "tickets", dbPath}
}

// checkCache verifies Redis reachability when configured.
func checkCache(ctx context.Context) checkResult {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return checkResult{"warn", "cache", "REDIS_ADDR not set, in-memory cache will be used"}
	}

	rc, err := cache.NewRedisClient(cache.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	})
	if err != nil {
		return checkResult{"fail", "cache", fmt.Sprintf("%s: %v", addr, err)}
	}
	defer rc.Close()

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		return checkResult{"fail", "cache", fmt.Sprintf("%s: %v", addr, err)}
	}
	return checkResult{"pass", "cache", addr}
}
