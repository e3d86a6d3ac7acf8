package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/logging"
	"github.com/hrdesk/hrdesk-go/internal/server"
)

// NewServeCmd constructs the `hrdesk serve` command, which starts the HTTP
// server and serves the web UI for interactive use.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HR desk HTTP server and web UI",
		Long: `Start the HR desk HTTP server on localhost.

The server exposes a REST API (chat, tickets, ingestion, health) and serves
the web UI for interactive HR question answering.

The server starts even when the dataset is missing: chat answers with a
degraded envelope until POST /api/ingest loads a corpus.

Examples:
  hrdesk serve
  hrdesk serve --port 9090
  INDEX_PROVIDER=qdrant hrdesk serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.NewFromEnv()
			ctx = logging.WithLogger(ctx, log)

			log.Info("serve starting", slog.String("index_provider", getEnvOrDefault("INDEX_PROVIDER", "chromem")))

			// An index that cannot be built is not fatal: the vector tier
			// fails over to keyword search, so start with a warning.
			index, emb, closeIndex, err := buildIndex(ctx, log)
			if err != nil {
				log.Warn("serve: vector search unavailable, continuing with keyword search only", slog.Any("error", err))
				index, emb = nil, nil
			}
			defer closeIndex()

			cacheClient, redisClient, closeCache := buildCache(log)
			defer closeCache()

			tickets, closeTickets := buildTicketStore(log)
			defer closeTickets()

			src := buildSource("")
			cfg := &assistant.Config{
				Source:   src,
				Index:    index,
				TopK:     getEnvInt("SEARCH_TOP_K", 0),
				Cache:    cacheClient,
				CacheTTL: cacheTTL(log),
			}

			hrAssistant, err := assistant.New(ctx, cfg)
			if err != nil {
				// A missing or unreadable dataset must not keep the server
				// down: start degraded and let /api/ingest load it later.
				log.Warn("serve: dataset not loaded, starting degraded",
					slog.String("path", src.Path()), slog.Any("error", err))
				hrAssistant, err = assistant.NewDeferred(cfg)
				if err != nil {
					return fmt.Errorf("serve: failed to initialise assistant: %w", err)
				}
			} else {
				log.Info("corpus loaded",
					slog.Int("records", hrAssistant.CorpusSize()),
					slog.Int("dropped", hrAssistant.DroppedRecords()),
				)
			}

			if !cmd.Flags().Changed("host") {
				host = getEnvOrDefault("HRDESK_HOST", host)
			}
			if !cmd.Flags().Changed("port") {
				port = getEnvInt("HRDESK_PORT", port)
			}

			serverCfg := &server.Config{
				Host:          host,
				Port:          port,
				Logger:        log,
				Pingers:       buildPingers(index, emb, redisClient, tickets),
				RateLimit:     getEnvFloat("HRDESK_RATE_LIMIT", 0),
				RateBurst:     getEnvInt("HRDESK_RATE_BURST", 0),
				APIKey:        os.Getenv("HRDESK_API_KEY"),
				StaticDir:     os.Getenv("HRDESK_STATIC_DIR"),
				IndexProvider: getEnvOrDefault("INDEX_PROVIDER", "chromem"),
			}
			// Assign only a live store: a typed nil inside the interface
			// would defeat the server's nil check.
			if tickets != nil {
				serverCfg.Tickets = tickets
			}

			srv, err := server.New(hrAssistant, serverCfg)
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "TCP port to listen on")

	return cmd
}
