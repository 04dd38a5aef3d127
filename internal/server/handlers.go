package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/models"
)

const (
	actionRead  = "read"
	actionWrite = "write"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSheetSync triggers a register sync. Action read returns the
// reconciled members and bills; write is acknowledged but not
// performed, since the register export is read-only.
func (s *Server) handleSheetSync(w http.ResponseWriter, r *http.Request) {
	_, err := s.authenticate(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, models.SyncResponse{Error: "Unauthorized"})
		return
	}

	var req models.SyncRequest
	if r.Body != nil {
		// An empty body means a plain read.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	switch req.Action {
	case "", actionRead:
	case actionWrite:
		writeJSON(w, http.StatusOK, models.SyncResponse{
			Message:        models.MsgWriteRequiresCredentials,
			RequiresSecret: true,
		})
		return
	default:
		writeJSON(w, http.StatusBadRequest, models.SyncResponse{
			Error: fmt.Sprintf("Unknown action: %s", req.Action),
		})
		return
	}

	result, err := s.engine.Sync(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Sync failed")
		writeJSON(w, http.StatusServiceUnavailable, models.SyncResponse{
			Error: "Unable to read the member register at this time.",
		})
		return
	}

	writeJSON(w, http.StatusOK, models.SyncResponse{
		Success: result.IsSuccess(),
		Message: result.Summary.String(),
		Members: result.Members,
		Bills:   result.Bills,
	})
}

func (s *Server) handleValidateMember(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ValidateResponse{Error: "Invalid request body"})
		return
	}

	status, resp := s.validator.Validate(r.Context(), req.Email, clientIP(r))
	writeJSON(w, status, resp)
}

func (s *Server) handleManageRoles(w http.ResponseWriter, r *http.Request) {
	if s.roles == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.RolesResponse{
			Error: "Role management is not configured.",
		})
		return
	}

	caller, err := s.authenticate(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, models.RolesResponse{Error: "Unauthorized"})
		return
	}

	var req models.RolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.RolesResponse{Error: "Invalid request body"})
		return
	}

	status, resp := s.roles.Handle(r.Context(), *caller, req)
	writeJSON(w, status, resp)
}
