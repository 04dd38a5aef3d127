package roles

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/models"
)

const (
	ActionList   = "list"
	ActionUpdate = "update"
)

const (
	msgForbidden    = "Only managers can manage roles."
	msgSelfDemotion = "Managers cannot demote themselves."
	msgUnknownUser  = "User not found."
	msgStoreFailure = "Unable to manage roles at this time. Please try again later."
)

// Service applies role management requests on behalf of an
// authenticated caller. Every action requires the caller to hold the
// manager role; the check runs against the store, not the token.
type Service struct {
	store interfaces.RoleStore
}

func NewService(store interfaces.RoleStore) *Service {
	return &Service{store: store}
}

// Handle authorizes and executes one role management request,
// returning the HTTP status and response envelope.
func (s *Service) Handle(ctx context.Context, caller interfaces.Identity, req models.RolesRequest) (int, models.RolesResponse) {
	callerRole, err := s.store.GetRole(ctx, caller.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to resolve caller role")
		return http.StatusServiceUnavailable, models.RolesResponse{Error: msgStoreFailure}
	}
	if callerRole != models.RoleManager {
		logrus.WithFields(logrus.Fields{
			"user_id": caller.UserID,
			"action":  req.Action,
		}).Warn("Role management denied for non-manager")
		return http.StatusForbidden, models.RolesResponse{Error: msgForbidden}
	}

	switch req.Action {
	case ActionList:
		return s.list(ctx)
	case ActionUpdate:
		return s.update(ctx, caller, req)
	default:
		return http.StatusBadRequest, models.RolesResponse{
			Error: fmt.Sprintf("Unknown action: %s", req.Action),
		}
	}
}

func (s *Service) list(ctx context.Context) (int, models.RolesResponse) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list accounts")
		return http.StatusServiceUnavailable, models.RolesResponse{Error: msgStoreFailure}
	}
	return http.StatusOK, models.RolesResponse{Success: true, Users: accounts}
}

func (s *Service) update(ctx context.Context, caller interfaces.Identity, req models.RolesRequest) (int, models.RolesResponse) {
	if req.TargetUserID == "" {
		return http.StatusBadRequest, models.RolesResponse{Error: "targetUserId is required"}
	}
	if !req.Role.IsValid() {
		return http.StatusBadRequest, models.RolesResponse{
			Error: fmt.Sprintf("Invalid role: %s", req.Role),
		}
	}
	// A manager stripping their own manager role would lock the
	// society out of role management entirely.
	if req.TargetUserID == caller.UserID && req.Role != models.RoleManager {
		return http.StatusBadRequest, models.RolesResponse{Error: msgSelfDemotion}
	}

	if err := s.store.UpsertRole(ctx, req.TargetUserID, req.Role); err != nil {
		logrus.WithError(err).WithField("target", req.TargetUserID).Error("Failed to update role")
		return http.StatusServiceUnavailable, models.RolesResponse{Error: msgStoreFailure}
	}

	logrus.WithFields(logrus.Fields{
		"caller": caller.UserID,
		"target": req.TargetUserID,
		"role":   req.Role,
	}).Info("✅ Role updated")
	return http.StatusOK, models.RolesResponse{
		Success: true,
		Message: fmt.Sprintf("Role updated to %s", req.Role),
	}
}
