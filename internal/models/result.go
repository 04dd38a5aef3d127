package models

import (
	"fmt"
	"time"
)

// SyncResult contains the outcome of one register sync.
type SyncResult struct {
	RunID      string            `json:"run_id"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	DurationMs int64             `json:"duration_ms"`
	Members    []Member          `json:"members"`
	Bills      []MaintenanceBill `json:"bills"`
	Summary    SyncSummary       `json:"summary"`
	Errors     []string          `json:"errors,omitempty"`
}

// SyncSummary provides aggregate statistics for one sync run.
type SyncSummary struct {
	RowsParsed       int `json:"rows_parsed"`
	RowsSkipped      int `json:"rows_skipped"`
	MembersParsed    int `json:"members_parsed"`
	BillsSynthesized int `json:"bills_synthesized"`
	BillsOutstanding int `json:"bills_outstanding"`
	BillsPaid        int `json:"bills_paid"`
}

// IsSuccess returns true if no errors occurred.
func (r *SyncResult) IsSuccess() bool {
	return len(r.Errors) == 0
}

// String returns a human-readable representation of the sync summary.
func (s SyncSummary) String() string {
	return fmt.Sprintf(
		"sync completed: Rows: %d parsed / %d skipped, Members: %d, "+
			"Bills: %d synthesized (%d outstanding, %d paid)",
		s.RowsParsed, s.RowsSkipped, s.MembersParsed,
		s.BillsSynthesized, s.BillsOutstanding, s.BillsPaid,
	)
}
