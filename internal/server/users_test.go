package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hrdesk/hrdesk-go/internal/directory"
)

func TestHandleValidateUser_KnownEmployee(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/validate-user",
		strings.NewReader(`{"user_id":"EMP001234"}`))
	w := httptest.NewRecorder()

	s.handleValidateUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp directory.Validation
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid {
		t.Error("expected valid:true")
	}
	if resp.Employee == nil || resp.Employee.Name != "John Doe" {
		t.Errorf("expected John Doe, got %+v", resp.Employee)
	}
}

func TestHandleValidateUser_GenericEmployeeID(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/validate-user",
		strings.NewReader(`{"user_id":"EMP424242"}`))
	w := httptest.NewRecorder()

	s.handleValidateUser(w, req)

	var resp directory.Validation
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid {
		t.Error("expected valid:true for well-formed unknown ID")
	}
	if resp.Employee == nil || resp.Employee.Department != "General" {
		t.Errorf("expected generic identity, got %+v", resp.Employee)
	}
}

func TestHandleValidateUser_InvalidFormat(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/validate-user",
		strings.NewReader(`{"user_id":"bogus"}`))
	w := httptest.NewRecorder()

	s.handleValidateUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid:false, got %d", w.Code)
	}

	var resp directory.Validation
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Valid {
		t.Error("expected valid:false")
	}
	if !strings.Contains(resp.Message, "EMP123456") {
		t.Errorf("expected format guidance in message, got %q", resp.Message)
	}
}

func TestHandleValidateUser_MissingID(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/validate-user",
		strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	s.handleValidateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
