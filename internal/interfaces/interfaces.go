package interfaces

import (
	"context"

	"github.com/dwellingconnect/society-sync/internal/models"
	"github.com/dwellingconnect/society-sync/internal/sheet"
)

// FeedSource fetches the member register and returns its parsed rows.
type FeedSource interface {
	FetchRows(ctx context.Context) ([]sheet.Row, error)
}

// SyncEngine defines sync orchestration.
type SyncEngine interface {
	Sync(ctx context.Context) (*models.SyncResult, error)
}

// RunStore persists sync run history.
type RunStore interface {
	// SaveRun stores the record of a completed sync run.
	SaveRun(ctx context.Context, record models.SyncRunRecord) error

	// GetLatestRun returns the most recent run for a society, or nil.
	GetLatestRun(ctx context.Context, society string) (*models.SyncRunRecord, error)

	// ListRuns returns up to limit recent runs for a society, newest first.
	ListRuns(ctx context.Context, society string, limit int) ([]models.SyncRunRecord, error)
}

// RoleStore defines persistent access to application accounts and roles.
type RoleStore interface {
	// ListAccounts returns all profiles joined with their role records.
	ListAccounts(ctx context.Context) ([]models.UserAccount, error)

	// GetRole returns the stored role for a user, defaulting to user
	// when no role row exists.
	GetRole(ctx context.Context, userID string) (models.Role, error)

	// UpsertRole creates or replaces the role row for a user.
	UpsertRole(ctx context.Context, userID string, role models.Role) error
}

// Verifier checks a bearer identity token and extracts the caller.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
}
