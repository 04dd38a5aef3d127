package feed

import (
	"context"

	"github.com/dwellingconnect/society-sync/internal/sheet"
)

// MockSource implements FeedSource for testing.
type MockSource struct {
	FetchRowsFunc func(ctx context.Context) ([]sheet.Row, error)

	// FetchCalls counts FetchRows invocations for cache assertions.
	FetchCalls int
}

func (m *MockSource) FetchRows(ctx context.Context) ([]sheet.Row, error) {
	m.FetchCalls++
	if m.FetchRowsFunc != nil {
		return m.FetchRowsFunc(ctx)
	}
	return nil, nil
}
