package sync

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dwellingconnect/society-sync/internal/models"
	"github.com/dwellingconnect/society-sync/internal/sheet"
)

// Alias chains map canonical member fields to the register's header
// variants, resolved first-match-wins per row.
var (
	nameAliases   = []string{"name(primarymember)", "name"}
	emailAliases  = []string{"emailaddress", "email"}
	phoneAliases  = []string{"contactnumber(primarymember)", "phone", "contactnumber"}
	flatAliases   = []string{"flatno.", "flatno", "flat"}
	wingAliases   = []string{"wing", "building"}
	idAliases     = []string{"memberid", "sr.no."}
	statusAliases = []string{"maintenancestatus", "status"}
	duesAliases   = []string{"outstandingdues", "dues", "outstanding"}
)

// Billing day-of-month constants for synthesized bills.
const (
	billDueDay  = 15
	billPaidDay = 10
)

// unknownName is the placeholder some register exports write into
// blank name cells. A row carrying it has no real member behind it.
const unknownName = "Unknown"

// Reconciler maps register rows into the canonical member collection
// and synthesizes maintenance bills from the status and dues columns.
type Reconciler struct {
	defaultAmount float64
	now           func() time.Time
}

// NewReconciler creates a reconciler. defaultAmount is charged when a
// bill is synthesized without a recorded outstanding amount.
func NewReconciler(defaultAmount float64) *Reconciler {
	if defaultAmount <= 0 {
		defaultAmount = models.DefaultBillAmount
	}
	return &Reconciler{
		defaultAmount: defaultAmount,
		now:           time.Now,
	}
}

// Reconcile produces members and bills from parsed rows. Rows whose
// name is empty or the placeholder are discarded entirely: no member,
// no bill. Output follows row order; no sorting is applied.
func (r *Reconciler) Reconcile(rows []sheet.Row) ([]models.Member, []models.MaintenanceBill) {
	var members []models.Member
	var bills []models.MaintenanceBill

	for i, row := range rows {
		pos := i + 1

		name := strings.TrimSpace(row.GetFirst(nameAliases...))
		if name == "" || name == unknownName {
			continue
		}

		member := models.Member{
			MemberID:          r.resolveMemberID(row, pos),
			Name:              name,
			Email:             strings.ToLower(strings.TrimSpace(row.GetFirst(emailAliases...))),
			Phone:             row.GetFirst(phoneAliases...),
			FlatNo:            row.GetFirst(flatAliases...),
			Wing:              row.GetFirst(wingAliases...),
			Role:              models.RoleUser,
			MaintenanceStatus: models.ParseMaintenanceStatus(row.GetFirst(statusAliases...)),
			OutstandingDues:   parseDues(row.GetFirst(duesAliases...)),
		}

		members = append(members, member)
		bills = append(bills, r.synthesizeBills(member, pos)...)
	}

	return members, bills
}

func (r *Reconciler) resolveMemberID(row sheet.Row, pos int) string {
	if id := strings.TrimSpace(row.GetFirst(idAliases...)); id != "" {
		return id
	}
	return fmt.Sprintf("USR%03d", pos)
}

// synthesizeBills derives bills for one member. A member still owing
// gets a current-period bill; a paid member gets a previous-month paid
// bill for payment history. A paid member with dues recorded gets
// both (see the reconciliation notes in DESIGN.md).
func (r *Reconciler) synthesizeBills(member models.Member, pos int) []models.MaintenanceBill {
	var bills []models.MaintenanceBill
	now := r.now()

	if member.OutstandingDues > 0 || member.MaintenanceStatus != models.StatusPaid {
		amount := member.OutstandingDues
		if amount <= 0 {
			amount = r.defaultAmount
		}
		due := time.Date(now.Year(), now.Month(), billDueDay, 0, 0, 0, 0, time.UTC)
		bills = append(bills, models.MaintenanceBill{
			ID:      models.BillID(member.MemberID, due, pos),
			UserID:  member.MemberID,
			FlatNo:  member.FlatNo,
			Amount:  amount,
			DueDate: models.FormatBillDate(due),
			Status:  member.MaintenanceStatus,
			Month:   due.Month().String(),
			Year:    due.Year(),
		})
	}

	if member.MaintenanceStatus == models.StatusPaid {
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		due := time.Date(prev.Year(), prev.Month(), billDueDay, 0, 0, 0, 0, time.UTC)
		paid := time.Date(prev.Year(), prev.Month(), billPaidDay, 0, 0, 0, 0, time.UTC)
		bills = append(bills, models.MaintenanceBill{
			ID:       models.BillID(member.MemberID, due, pos),
			UserID:   member.MemberID,
			FlatNo:   member.FlatNo,
			Amount:   r.defaultAmount,
			DueDate:  models.FormatBillDate(due),
			Status:   models.StatusPaid,
			PaidDate: models.FormatBillDate(paid),
			Month:    due.Month().String(),
			Year:     due.Year(),
		})
	}

	return bills
}

// parseDues extracts a non-negative amount from a dues cell. Grouping
// commas and a currency prefix are tolerated; anything unparseable
// counts as zero.
func parseDues(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
