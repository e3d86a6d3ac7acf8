// Package server implements the HTTP server that exposes the HR assistant
// via a REST API and serves the optional web UI.
// The server is started by the `hrdesk serve` CLI command.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/logging"
)

// New constructs a Server from the provided assistant and config.
func New(hrAssistant *assistant.Assistant, cfg *Config) (*Server, error) {
	if hrAssistant == nil {
		return nil, fmt.Errorf("server: assistant must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		// WriteTimeout must cover a full rebuild triggered via /api/ingest.
		cfg.WriteTimeout = 2 * time.Minute
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.MetricsRegistry == nil {
		reg := prometheus.NewRegistry()
		cfg.MetricsRegistry = reg
		if cfg.MetricsGatherer == nil {
			cfg.MetricsGatherer = reg
		}
	}

	s := &Server{
		assistant: hrAssistant,
		searcher:  hrAssistant,
		cfg:       cfg,
		log:       log,
		pingers:   cfg.Pingers,
		metrics:   newServerMetrics(cfg.MetricsRegistry),
		started:   time.Now(),
	}

	if cfg.APIKey == "" {
		log.Warn("server: HRDESK_API_KEY not set — admin endpoints are unauthenticated")
	}

	rl, stopRL := newRateLimiter(cfg.RateLimit, cfg.RateBurst, log)
	s.stopRL = stopRL

	mux := http.NewServeMux()
	mux.Handle("POST /api/chat", rl.middleware(s.instrument("chat", s.handleChat)))
	mux.Handle("POST /api/validate-user", s.instrument("validate_user", s.handleValidateUser))
	mux.Handle("POST /api/ticket", s.instrument("ticket_create", s.handleTicket))
	mux.Handle("GET /api/tickets", authMiddleware(cfg.APIKey, s.instrument("ticket_list", s.handleTickets)))
	mux.Handle("POST /api/contact-hr", s.instrument("contact_hr", s.handleContactHR))
	mux.Handle("POST /api/ingest", authMiddleware(cfg.APIKey, s.instrument("ingest", s.handleIngest)))
	mux.Handle("GET /api/health", s.instrument("health", s.handleHealth))
	mux.Handle("GET /api/ready", s.instrument("ready", s.handleReady))
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := requestLogger(log, corsMiddleware(mux))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Start begins listening and serving HTTP requests. It blocks until the
// context is cancelled, then performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("server listening", slog.String("addr", "http://"+s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.stopRL()
		return fmt.Errorf("server: listen error: %w", err)
	case <-ctx.Done():
		s.stopRL()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// handleChat handles POST /api/chat. It always responds 200 with a complete
// response envelope — retrieval failures degrade inside the assistant, they
// are never surfaced as HTTP errors.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp := s.searcher.Search(r.Context(), req.Question, req.TopK)
	elapsed := time.Since(start)

	s.metrics.chatRequestsTotal.WithLabelValues(resp.RetrievalMethod).Inc()
	s.metrics.chatDurationSeconds.WithLabelValues(resp.RetrievalMethod).Observe(elapsed.Seconds())

	logging.FromContext(r.Context()).Info("chat answered",
		slog.String("retrieval_method", resp.RetrievalMethod),
		slog.Float64("confidence", resp.ConfidenceScore),
		slog.Bool("low_confidence", resp.IsLowConfidence),
		slog.Duration("duration", elapsed),
	)

	writeJSON(w, http.StatusOK, resp)
}

// handleContactHR handles POST /api/contact-hr with the canned contact flow.
// The body is optional and ignored beyond being well-formed.
func (s *Server) handleContactHR(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, assistant.ContactResponse())
}

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("server: response encode failed", slog.Any("error", err))
	}
}
