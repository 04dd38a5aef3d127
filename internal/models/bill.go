package models

import (
	"fmt"
	"time"
)

// DefaultBillAmount is charged when a bill must be synthesized but the
// register carries no outstanding amount for the member.
const DefaultBillAmount = 5000

// MaintenanceBill is a derived billing record. Bills are heuristic
// reconstructions from the register's status and dues columns, not
// entries in a payment ledger.
type MaintenanceBill struct {
	ID       string            `json:"id"`
	UserID   string            `json:"userId"`
	FlatNo   string            `json:"flatNo"`
	Amount   float64           `json:"amount"`
	DueDate  string            `json:"dueDate"`
	Status   MaintenanceStatus `json:"status"`
	PaidDate string            `json:"paidDate,omitempty"`
	Month    string            `json:"month"`
	Year     int               `json:"year"`
}

// BillID builds the deterministic bill identifier for one member and
// billing period. The period month keeps the current-period and
// previous-period bills of a single row distinct.
func BillID(memberID string, period time.Time, rowPos int) string {
	return fmt.Sprintf("BILL-%s-%d-%02d-%03d", memberID, period.Year(), int(period.Month()), rowPos)
}

// FormatBillDate renders a bill date cell (YYYY-MM-DD).
func FormatBillDate(t time.Time) string {
	return t.Format("2006-01-02")
}
