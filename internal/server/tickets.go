package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hrdesk/hrdesk-go/internal/logging"
	"github.com/hrdesk/hrdesk-go/internal/store"
)

// defaultTicketLimit is how many tickets GET /api/tickets returns when no
// limit parameter is given.
const defaultTicketLimit = 20

// maxTicketLimit caps the listing size regardless of the limit parameter.
const maxTicketLimit = 100

// handleTicket handles POST /api/ticket by persisting a new escalation
// request to the ticket store.
func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Issue) == "" {
		http.Error(w, "issue is required", http.StatusBadRequest)
		return
	}
	if s.cfg.Tickets == nil {
		http.Error(w, "ticket store unavailable", http.StatusServiceUnavailable)
		return
	}

	t, err := s.cfg.Tickets.Create(r.Context(), req.Issue, req.UserID)
	if err != nil {
		logging.FromContext(r.Context()).Error("ticket create failed", slog.Any("error", err))
		http.Error(w, "could not create ticket", http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).Info("ticket created",
		slog.String("ticket_id", t.ID),
		slog.String("user_id", t.UserID),
	)

	writeJSON(w, http.StatusOK, ticketResponse{
		TicketID: t.ID,
		Status:   t.Status,
		Message: fmt.Sprintf("Ticket %s created. Our HR team will reach out within 2 business days.",
			t.ID),
	})
}

// handleTickets handles GET /api/tickets, the admin listing of recent
// escalations. Behind Bearer auth when an API key is configured.
func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Tickets == nil {
		http.Error(w, "ticket store unavailable", http.StatusServiceUnavailable)
		return
	}

	limit := defaultTicketLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > maxTicketLimit {
		limit = maxTicketLimit
	}

	tickets, err := s.cfg.Tickets.Recent(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("ticket listing failed", slog.Any("error", err))
		http.Error(w, "could not list tickets", http.StatusInternalServerError)
		return
	}
	if tickets == nil {
		tickets = []store.Ticket{}
	}

	writeJSON(w, http.StatusOK, ticketListResponse{Tickets: tickets})
}
