package roles

import (
	"context"

	"github.com/dwellingconnect/society-sync/internal/models"
)

// MockStore is a RoleStore test double. Unset functions return zero
// values so tests only stub what they exercise.
type MockStore struct {
	ListAccountsFunc func(ctx context.Context) ([]models.UserAccount, error)
	GetRoleFunc      func(ctx context.Context, userID string) (models.Role, error)
	UpsertRoleFunc   func(ctx context.Context, userID string, role models.Role) error

	UpsertCalls []UpsertCall
}

type UpsertCall struct {
	UserID string
	Role   models.Role
}

func (m *MockStore) ListAccounts(ctx context.Context) ([]models.UserAccount, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, userID)
	}
	return models.RoleUser, nil
}

func (m *MockStore) UpsertRole(ctx context.Context, userID string, role models.Role) error {
	m.UpsertCalls = append(m.UpsertCalls, UpsertCall{UserID: userID, Role: role})
	if m.UpsertRoleFunc != nil {
		return m.UpsertRoleFunc(ctx, userID, role)
	}
	return nil
}
