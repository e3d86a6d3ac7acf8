package store

import (
	"context"
	"regexp"
	"testing"
)

// openTestStore opens an in-memory SQLiteStore for use in tests.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var ticketIDPattern = regexp.MustCompile(`^HR-\d{14}-[0-9A-F]{8}$`)

func Test_Store_CreateAssignsIDAndStatus(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	ticket, err := s.Create(ctx, "My payslip is missing the travel allowance", "EMP001234")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !ticketIDPattern.MatchString(ticket.ID) {
		t.Errorf("ticket ID %q does not match the expected format", ticket.ID)
	}
	if ticket.Status != StatusOpen {
		t.Errorf("status = %q, want %q", ticket.Status, StatusOpen)
	}
	if ticket.Issue != "My payslip is missing the travel allowance" {
		t.Errorf("issue = %q", ticket.Issue)
	}
	if ticket.UserID != "EMP001234" {
		t.Errorf("user_id = %q", ticket.UserID)
	}
	if ticket.CreatedAt.IsZero() {
		t.Error("created_at is zero")
	}
}

func Test_Store_CreatePersists(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Relocation budget question", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tickets, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("want 1 ticket, got %d", len(tickets))
	}
	got := tickets[0]
	if got.ID != created.ID || got.Issue != created.Issue || got.Status != StatusOpen {
		t.Errorf("persisted ticket differs: got %+v, want %+v", got, created)
	}
	if got.UserID != "" {
		t.Errorf("user_id = %q, want empty for anonymous ticket", got.UserID)
	}
}

func Test_Store_RecentNewestFirst(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	issues := []string{"first", "second", "third"}
	for _, issue := range issues {
		if _, err := s.Create(ctx, issue, ""); err != nil {
			t.Fatalf("create %q: %v", issue, err)
		}
	}

	tickets, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("want 3 tickets, got %d", len(tickets))
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if tickets[i].Issue != w {
			t.Errorf("tickets[%d].Issue = %q, want %q", i, tickets[i].Issue, w)
		}
	}
}

func Test_Store_RecentLimitRespected(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	for range 6 {
		if _, err := s.Create(ctx, "overflow check", ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tickets, err := s.Recent(ctx, 4)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(tickets) != 4 {
		t.Errorf("want 4 tickets, got %d", len(tickets))
	}
}

func Test_Store_EmptyReturnsNil(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	tickets, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent empty: %v", err)
	}
	if len(tickets) != 0 {
		t.Errorf("want 0 tickets, got %d", len(tickets))
	}
}

func Test_Store_TicketIDsUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for range 50 {
		id := NewTicketID()
		if seen[id] {
			t.Fatalf("duplicate ticket ID generated: %s", id)
		}
		seen[id] = true
	}
}
