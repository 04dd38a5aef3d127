package models

import "strings"

// Role is a user's role in the society application.
type Role string

const (
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleUser
}

// MaintenanceStatus is the state of a member's maintenance dues.
type MaintenanceStatus string

const (
	StatusPaid    MaintenanceStatus = "paid"
	StatusPending MaintenanceStatus = "pending"
	StatusOverdue MaintenanceStatus = "overdue"
)

// ParseMaintenanceStatus normalizes a raw status cell. Anything not
// recognizably paid or overdue is treated as pending.
func ParseMaintenanceStatus(raw string) MaintenanceStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "clear", "yes":
		return StatusPaid
	case "overdue", "late", "no":
		return StatusOverdue
	default:
		return StatusPending
	}
}

// Member is a canonical society member reconstructed from one register
// row. The collection is rebuilt wholesale on every sync; members are
// never mutated in place.
type Member struct {
	MemberID          string            `json:"memberId"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	FlatNo            string            `json:"flatNo"`
	Wing              string            `json:"wing"`
	Role              Role              `json:"role"`
	MaintenanceStatus MaintenanceStatus `json:"maintenanceStatus"`
	OutstandingDues   float64           `json:"outstandingDues"`
}

// SheetMember is the minimal projection the email validator returns:
// enough to answer "is this a registered member" and to pre-fill a
// signup form, never the full raw row.
type SheetMember struct {
	MemberID          string            `json:"memberId"`
	Email             string            `json:"email"`
	Name              string            `json:"name"`
	Phone             string            `json:"phone"`
	FlatNo            string            `json:"flatNo"`
	Wing              string            `json:"wing"`
	MaintenanceStatus MaintenanceStatus `json:"maintenanceStatus"`
}
