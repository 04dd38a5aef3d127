package roles

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/models"
)

func managerStore() *MockStore {
	return &MockStore{
		GetRoleFunc: func(ctx context.Context, userID string) (models.Role, error) {
			if userID == "mgr-1" {
				return models.RoleManager, nil
			}
			return models.RoleUser, nil
		},
	}
}

var manager = interfaces.Identity{UserID: "mgr-1", Email: "manager@x.com"}

func TestHandleRejectsNonManager(t *testing.T) {
	svc := NewService(managerStore())

	status, resp := svc.Handle(context.Background(),
		interfaces.Identity{UserID: "usr-9"},
		models.RolesRequest{Action: ActionList})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if resp.Error != msgForbidden {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHandleList(t *testing.T) {
	store := managerStore()
	store.ListAccountsFunc = func(ctx context.Context) ([]models.UserAccount, error) {
		return []models.UserAccount{
			{UserID: "usr-1", Name: "Alice Kumar", Role: models.RoleManager},
			{UserID: "usr-2", Name: "Bob Shah", Role: models.RoleUser},
		}, nil
	}
	svc := NewService(store)

	status, resp := svc.Handle(context.Background(), manager, models.RolesRequest{Action: ActionList})
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected success, got %d %+v", status, resp)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}
}

func TestHandleUpdate(t *testing.T) {
	store := managerStore()
	svc := NewService(store)

	status, resp := svc.Handle(context.Background(), manager, models.RolesRequest{
		Action:       ActionUpdate,
		TargetUserID: "usr-2",
		Role:         models.RoleManager,
	})
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected success, got %d %+v", status, resp)
	}
	if len(store.UpsertCalls) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(store.UpsertCalls))
	}
	if call := store.UpsertCalls[0]; call.UserID != "usr-2" || call.Role != models.RoleManager {
		t.Fatalf("unexpected upsert %+v", call)
	}
}

func TestHandleRejectsSelfDemotion(t *testing.T) {
	store := managerStore()
	svc := NewService(store)

	status, resp := svc.Handle(context.Background(), manager, models.RolesRequest{
		Action:       ActionUpdate,
		TargetUserID: "mgr-1",
		Role:         models.RoleUser,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if resp.Error != msgSelfDemotion {
		t.Fatalf("unexpected message %q", resp.Error)
	}
	if len(store.UpsertCalls) != 0 {
		t.Fatal("self demotion must not reach the store")
	}
}

func TestHandleSelfReassertIsAllowed(t *testing.T) {
	store := managerStore()
	svc := NewService(store)

	status, _ := svc.Handle(context.Background(), manager, models.RolesRequest{
		Action:       ActionUpdate,
		TargetUserID: "mgr-1",
		Role:         models.RoleManager,
	})
	if status != http.StatusOK {
		t.Fatalf("re-asserting own manager role should succeed, got %d", status)
	}
}

func TestHandleUpdateValidation(t *testing.T) {
	svc := NewService(managerStore())

	tests := []struct {
		name string
		req  models.RolesRequest
	}{
		{"missing target", models.RolesRequest{Action: ActionUpdate, Role: models.RoleUser}},
		{"invalid role", models.RolesRequest{Action: ActionUpdate, TargetUserID: "usr-2", Role: "admin"}},
		{"unknown action", models.RolesRequest{Action: "promote"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := svc.Handle(context.Background(), manager, tt.req)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
		})
	}
}

func TestHandleStoreFailure(t *testing.T) {
	store := managerStore()
	store.ListAccountsFunc = func(ctx context.Context) ([]models.UserAccount, error) {
		return nil, errors.New("connection refused")
	}
	svc := NewService(store)

	status, resp := svc.Handle(context.Background(), manager, models.RolesRequest{Action: ActionList})
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
	if resp.Error != msgStoreFailure {
		t.Fatalf("store errors must not leak, got %q", resp.Error)
	}
}
