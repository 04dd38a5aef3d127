package dynamodb

import (
	"context"

	"github.com/dwellingconnect/society-sync/internal/models"
)

// MockStore implements RunStore for testing.
type MockStore struct {
	SaveRunFunc      func(ctx context.Context, record models.SyncRunRecord) error
	GetLatestRunFunc func(ctx context.Context, society string) (*models.SyncRunRecord, error)
	ListRunsFunc     func(ctx context.Context, society string, limit int) ([]models.SyncRunRecord, error)

	// Track calls for assertions.
	SavedRuns []models.SyncRunRecord
}

func (m *MockStore) SaveRun(ctx context.Context, record models.SyncRunRecord) error {
	m.SavedRuns = append(m.SavedRuns, record)
	if m.SaveRunFunc != nil {
		return m.SaveRunFunc(ctx, record)
	}
	return nil
}

func (m *MockStore) GetLatestRun(ctx context.Context, society string) (*models.SyncRunRecord, error) {
	if m.GetLatestRunFunc != nil {
		return m.GetLatestRunFunc(ctx, society)
	}
	return nil, nil
}

func (m *MockStore) ListRuns(ctx context.Context, society string, limit int) ([]models.SyncRunRecord, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(ctx, society, limit)
	}
	return nil, nil
}
