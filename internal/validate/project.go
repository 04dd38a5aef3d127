package validate

import (
	"fmt"
	"strings"

	"github.com/dwellingconnect/society-sync/internal/models"
	"github.com/dwellingconnect/society-sync/internal/sheet"
)

var (
	nameAliases   = []string{"name(primarymember)", "name"}
	emailAliases  = []string{"emailaddress", "email"}
	phoneAliases  = []string{"contactnumber(primarymember)", "phone"}
	flatAliases   = []string{"flatno.", "flatno"}
	idAliases     = []string{"memberid", "sr.no."}
	statusAliases = []string{"maintenancestatus", "status"}
)

// projectRows reduces register rows to the membership projection the
// validator answers from. Rows without an email cannot match a signup
// and are dropped; names are not required here, unlike the full sync.
func projectRows(rows []sheet.Row) []models.SheetMember {
	var members []models.SheetMember
	for i, row := range rows {
		email := strings.ToLower(strings.TrimSpace(row.GetFirst(emailAliases...)))
		if email == "" {
			continue
		}

		memberID := strings.TrimSpace(row.GetFirst(idAliases...))
		if memberID == "" {
			memberID = fmt.Sprintf("M%03d", i+1)
		}

		members = append(members, models.SheetMember{
			MemberID:          memberID,
			Email:             email,
			Name:              row.GetFirst(nameAliases...),
			Phone:             row.GetFirst(phoneAliases...),
			FlatNo:            row.GetFirst(flatAliases...),
			Wing:              row.Get("wing"),
			MaintenanceStatus: models.ParseMaintenanceStatus(row.GetFirst(statusAliases...)),
		})
	}
	return members
}
