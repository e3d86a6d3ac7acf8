package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hrdesk/hrdesk-go/internal/assistant"
	"github.com/hrdesk/hrdesk-go/internal/corpus"
	"github.com/hrdesk/hrdesk-go/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the TCP port to listen on (default: 8080).
	Port int
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration
	// ShutdownTimeout is the maximum duration for a graceful shutdown.
	ShutdownTimeout time.Duration
	// Logger is the structured logger used by the server and its handlers.
	// If nil, [slog.Default] is used.
	Logger *slog.Logger
	// Pingers is the ordered list of dependency probes run by GET /api/ready.
	// If empty, /api/ready returns 200 with no checks (liveness-only mode).
	Pingers []Pinger
	// RateLimit is the sustained request rate allowed per IP on rate-limited
	// endpoints (requests/second). Defaults to 10 if zero.
	RateLimit float64
	// RateBurst is the maximum instantaneous burst per IP. Defaults to 20 if zero.
	RateBurst int
	// APIKey is the Bearer token required on admin routes (/api/ingest,
	// GET /api/tickets). If empty, authentication is disabled (development mode).
	APIKey string
	// StaticDir is the directory of UI files served at "/". Empty disables
	// static file serving.
	StaticDir string
	// IndexProvider is the similarity index backend label reported by
	// GET /api/health (chromem, qdrant, none).
	IndexProvider string
	// Tickets is the ticket store backing POST /api/ticket. If nil, ticket
	// endpoints respond 503.
	Tickets store.TicketStore
	// MetricsRegistry receives the server's Prometheus metrics. If nil, a
	// dedicated registry is created.
	MetricsRegistry prometheus.Registerer
	// MetricsGatherer serves GET /metrics. If nil, the dedicated registry is
	// used.
	MetricsGatherer prometheus.Gatherer
}

// searcher is the interface the handlers call into the assistant.
// *assistant.Assistant satisfies it; tests inject a fake.
type searcher interface {
	// Search answers a question. Never returns an error; failures degrade
	// into a well-formed envelope.
	Search(ctx context.Context, question string, topK int) *assistant.Response

	// RebuildFrom reloads the corpus and index, optionally from a new source.
	RebuildFrom(ctx context.Context, src corpus.Source) (int, error)

	// Ready reports whether a corpus snapshot has been loaded.
	Ready() bool

	// CorpusSize returns the number of records in the active snapshot.
	CorpusSize() int

	// DroppedRecords returns how many malformed rows the load skipped.
	DroppedRecords() int
}

// Server is the HTTP server that exposes the HR assistant.
type Server struct {
	// assistant is the question-answering core behind all chat traffic.
	assistant *assistant.Assistant
	// searcher is the interface used by handlers; set to assistant in
	// production, overridden by a fake in tests.
	searcher searcher
	// cfg holds the resolved server configuration.
	cfg *Config
	// httpServer is the underlying net/http server.
	httpServer *http.Server
	// log is the structured logger for this server instance.
	log *slog.Logger
	// pingers is the ordered list of dependency probes for GET /api/ready.
	pingers []Pinger
	// metrics holds the Prometheus instruments owned by this server.
	metrics *serverMetrics
	// started is when the server was constructed, for uptime reporting.
	started time.Time
	// stopRL stops the rate limiter's background eviction goroutine on shutdown.
	stopRL func()
}

// chatRequest is the JSON body for POST /api/chat.
type chatRequest struct {
	// Question is the user's natural language HR question.
	Question string `json:"question"`
	// TopK overrides the number of vector candidates considered. Optional.
	TopK int `json:"top_k,omitempty"`
	// UserID is the optional employee ID of the asker.
	UserID string `json:"user_id,omitempty"`
}

// validateUserRequest is the JSON body for POST /api/validate-user.
type validateUserRequest struct {
	// UserID is the employee ID to validate.
	UserID string `json:"user_id"`
}

// ticketRequest is the JSON body for POST /api/ticket.
type ticketRequest struct {
	// UserID is the optional employee ID of the requester.
	UserID string `json:"user_id,omitempty"`
	// Issue is the free-form problem description.
	Issue string `json:"issue"`
}

// ticketResponse is the JSON response for POST /api/ticket.
type ticketResponse struct {
	// TicketID is the assigned public ticket identifier.
	TicketID string `json:"ticket_id"`
	// Status is the ticket lifecycle state, "Open" on creation.
	Status string `json:"status"`
	// Message is a human-readable confirmation for the UI.
	Message string `json:"message"`
}

// ticketListResponse is the JSON response for GET /api/tickets.
type ticketListResponse struct {
	// Tickets is the recent-first ticket listing.
	Tickets []store.Ticket `json:"tickets"`
}

// contactRequest is the JSON body for POST /api/contact-hr. Both fields are
// optional; the endpoint returns the same canned flow either way.
type contactRequest struct {
	// UserID is the optional employee ID of the asker.
	UserID string `json:"user_id,omitempty"`
	// Question is the optional question that led here.
	Question string `json:"question,omitempty"`
}

// ingestRequest is the JSON body for POST /api/ingest.
type ingestRequest struct {
	// Path optionally points at a new CSV dataset. Empty reloads the
	// configured one.
	Path string `json:"path,omitempty"`
}

// ingestResponse is the JSON response for POST /api/ingest.
type ingestResponse struct {
	// Status is "ok" on success, "error" otherwise.
	Status string `json:"status"`
	// Records is the number of records loaded into the new snapshot.
	Records int `json:"records"`
	// Message is a human-readable summary.
	Message string `json:"message"`
}

// healthResponse is the JSON body returned by GET /api/health.
type healthResponse struct {
	// Status is always "ok" when the process is serving.
	Status string `json:"status"`
	// Ready reports whether a corpus snapshot is loaded.
	Ready bool `json:"ready"`
	// Records is the number of FAQ records in the active snapshot.
	Records int `json:"records"`
	// DroppedRecords is how many malformed rows the load skipped.
	DroppedRecords int `json:"dropped_records"`
	// IndexProvider is the similarity index backend in use.
	IndexProvider string `json:"index_provider"`
	// UptimeSeconds is how long the server has been up.
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Version is the binary version.
	Version string `json:"version"`
}
