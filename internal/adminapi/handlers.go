package adminapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	SuperAdmin bool   `json:"super_admin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	op, ok := s.roster.Authenticate(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid username or password")
		return
	}

	token, err := generateToken(s.signingKey, op.Username, op.SuperAdmin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: op.Username, SuperAdmin: op.SuperAdmin})
}

// handleRecords lists persisted records, optionally filtered by
// visitor_id, inviter_id, and status query parameters.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
		return
	}

	var f store.RecordFilter
	if v := r.URL.Query().Get("visitor_id"); v != "" {
		f.VisitorID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := r.URL.Query().Get("inviter_id"); v != "" {
		f.InviterID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		f.Status = model.RecordStatus(v)
	}

	records, err := s.store.ListRecords(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to list records")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

type revokeRequest struct {
	RecordID string `json:"record_id"`
}

// handleRevoke marks a record revoked. Only a super admin may revoke a
// record; any other operator gets 403 Forbidden.
func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req revokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}
	if req.RecordID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "record_id is required")
		return
	}

	if !superAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden", "only a super admin may revoke a record")
		return
	}

	updated, err := s.store.UpdateRecordStatus(r.Context(), req.RecordID, model.RecordRevoked)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "not_found", "no such record")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "failed to revoke record")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
