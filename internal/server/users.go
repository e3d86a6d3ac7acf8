package server

import (
	"encoding/json"
	"net/http"

	"github.com/hrdesk/hrdesk-go/internal/directory"
)

// handleValidateUser handles POST /api/validate-user. Validation is a pure
// lookup; invalid IDs still respond 200 with valid:false so the client can
// show the guidance message.
func (s *Server) handleValidateUser(w http.ResponseWriter, r *http.Request) {
	var req validateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, directory.Validate(req.UserID))
}
