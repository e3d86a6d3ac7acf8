package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hrdesk/hrdesk-go/internal/store"
)

// ---------------------------------------------------------------------------
// Fake ticket store
// ---------------------------------------------------------------------------

// fakeTicketStore implements store.TicketStore in memory for handler tests.
type fakeTicketStore struct {
	// created collects tickets in creation order.
	created []store.Ticket
	// createErr forces Create to fail when non-nil.
	createErr error
	// recentErr forces Recent to fail when non-nil.
	recentErr error
}

func (f *fakeTicketStore) Create(_ context.Context, issue, userID string) (store.Ticket, error) {
	if f.createErr != nil {
		return store.Ticket{}, f.createErr
	}
	t := store.Ticket{
		ID:        store.NewTicketID(),
		Issue:     issue,
		UserID:    userID,
		Status:    store.StatusOpen,
		CreatedAt: time.Now(),
	}
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTicketStore) Recent(_ context.Context, n int) ([]store.Ticket, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if n > len(f.created) {
		n = len(f.created)
	}
	out := make([]store.Ticket, 0, n)
	for i := len(f.created) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.created[i])
	}
	return out, nil
}

func (f *fakeTicketStore) Close() error { return nil }

// newTicketTestServer builds a *Server wired with the given ticket store.
func newTicketTestServer(ts store.TicketStore) *Server {
	s := newTestServer()
	s.cfg.Tickets = ts
	return s
}

// ---------------------------------------------------------------------------
// POST /api/ticket
// ---------------------------------------------------------------------------

func TestHandleTicket_Create(t *testing.T) {
	t.Parallel()

	fs := &fakeTicketStore{}
	s := newTicketTestServer(fs)

	req := httptest.NewRequest(http.MethodPost, "/api/ticket",
		strings.NewReader(`{"user_id":"EMP001234","issue":"payslip shows wrong HRA"}`))
	w := httptest.NewRecorder()

	s.handleTicket(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", w.Code, w.Body.String())
	}

	var resp ticketResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.TicketID, "HR-") {
		t.Errorf("ticket_id: expected HR- prefix, got %q", resp.TicketID)
	}
	if resp.Status != store.StatusOpen {
		t.Errorf("status: expected %q, got %q", store.StatusOpen, resp.Status)
	}
	if len(fs.created) != 1 {
		t.Fatalf("expected 1 persisted ticket, got %d", len(fs.created))
	}
	if fs.created[0].UserID != "EMP001234" {
		t.Errorf("persisted user_id: got %q", fs.created[0].UserID)
	}
}

func TestHandleTicket_MissingIssue(t *testing.T) {
	t.Parallel()

	s := newTicketTestServer(&fakeTicketStore{})
	req := httptest.NewRequest(http.MethodPost, "/api/ticket",
		strings.NewReader(`{"user_id":"EMP001234"}`))
	w := httptest.NewRecorder()

	s.handleTicket(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleTicket_StoreDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer() // no ticket store configured
	req := httptest.NewRequest(http.MethodPost, "/api/ticket",
		strings.NewReader(`{"issue":"anything"}`))
	w := httptest.NewRecorder()

	s.handleTicket(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a ticket store, got %d", w.Code)
	}
}

func TestHandleTicket_StoreError(t *testing.T) {
	t.Parallel()

	s := newTicketTestServer(&fakeTicketStore{createErr: errors.New("disk full")})
	req := httptest.NewRequest(http.MethodPost, "/api/ticket",
		strings.NewReader(`{"issue":"anything"}`))
	w := httptest.NewRecorder()

	s.handleTicket(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /api/tickets
// ---------------------------------------------------------------------------

func TestHandleTickets_List(t *testing.T) {
	t.Parallel()

	fs := &fakeTicketStore{}
	s := newTicketTestServer(fs)

	for _, issue := range []string{"first", "second", "third"} {
		if _, err := fs.Create(context.Background(), issue, ""); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tickets?limit=2", nil)
	w := httptest.NewRecorder()

	s.handleTickets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", w.Code, w.Body.String())
	}

	var resp ticketListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(resp.Tickets))
	}
	if resp.Tickets[0].Issue != "third" {
		t.Errorf("expected newest first, got %q", resp.Tickets[0].Issue)
	}
}

func TestHandleTickets_InvalidLimit(t *testing.T) {
	t.Parallel()

	s := newTicketTestServer(&fakeTicketStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/tickets?limit=zero", nil)
	w := httptest.NewRecorder()

	s.handleTickets(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleTickets_EmptyListIsNotNull(t *testing.T) {
	t.Parallel()

	s := newTicketTestServer(&fakeTicketStore{})
	req := httptest.NewRequest(http.MethodGet, "/api/tickets", nil)
	w := httptest.NewRecorder()

	s.handleTickets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"tickets":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}
