package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/interfaces"
	"github.com/dwellingconnect/society-sync/internal/models"
)

// Engine orchestrates a register sync run.
type Engine struct {
	source     interfaces.FeedSource
	reconciler *Reconciler
	store      interfaces.RunStore
	cfg        *config.Config
	mu         sync.Mutex
	running    bool
}

// NewEngine creates a sync engine.
func NewEngine(source interfaces.FeedSource, cfg *config.Config) *Engine {
	return &Engine{
		source:     source,
		reconciler: NewReconciler(cfg.Billing.DefaultAmount),
		cfg:        cfg,
	}
}

// SetRunStore enables run-history persistence. If nil, history is skipped.
func (e *Engine) SetRunStore(store interfaces.RunStore) {
	e.store = store
}

// Sync fetches the register, reconciles it into members and bills, and
// optionally persists the run record. The member and bill collections
// are rebuilt from scratch on every call.
func (e *Engine) Sync(ctx context.Context) (*models.SyncResult, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("sync already in progress")
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	start := time.Now()
	runID := uuid.NewString()

	rows, err := e.source.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"rows":   len(rows),
		"run_id": runID,
	}).Info("📋 [1/3] Register fetched")

	members, bills := e.reconciler.Reconcile(rows)
	logrus.WithFields(logrus.Fields{
		"members": len(members),
		"bills":   len(bills),
		"skipped": len(rows) - len(members),
	}).Info("🔍 [2/3] Register reconciled")
	for _, m := range members {
		logrus.WithFields(logrus.Fields{
			"member_id": m.MemberID,
			"flat":      m.FlatNo,
			"status":    m.MaintenanceStatus,
			"dues":      m.OutstandingDues,
		}).Debug("  reconciled member")
	}

	end := time.Now()
	result := &models.SyncResult{
		RunID:      runID,
		StartTime:  start,
		EndTime:    end,
		DurationMs: end.Sub(start).Milliseconds(),
		Members:    members,
		Bills:      bills,
		Summary:    buildSummary(len(rows), members, bills),
	}

	// Run history is best-effort: a store failure never fails the sync.
	if e.store != nil {
		record := models.NewSyncRunRecord(e.cfg.Society.ID, result, e.cfg.DynamoDB.TTLDays)
		if err := e.store.SaveRun(ctx, record); err != nil {
			logrus.WithError(err).Warn("⚠ Could not persist sync run record")
			result.Errors = append(result.Errors, fmt.Sprintf("persisting run record: %v", err))
		} else {
			logrus.WithField("run_id", runID).Info("💾 [3/3] Run record persisted")
		}
	} else {
		logrus.Info("💾 [3/3] Run history disabled")
	}

	logrus.Info(result.Summary.String())
	return result, nil
}

func buildSummary(rowCount int, members []models.Member, bills []models.MaintenanceBill) models.SyncSummary {
	summary := models.SyncSummary{
		RowsParsed:       rowCount,
		RowsSkipped:      rowCount - len(members),
		MembersParsed:    len(members),
		BillsSynthesized: len(bills),
	}
	for _, b := range bills {
		if b.Status == models.StatusPaid {
			summary.BillsPaid++
		} else {
			summary.BillsOutstanding++
		}
	}
	return summary
}
