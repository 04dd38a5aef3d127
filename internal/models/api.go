package models

// SyncRequest is the body of the sheet-sync endpoint.
type SyncRequest struct {
	Action string `json:"action"`
}

// MsgWriteRequiresCredentials is returned for write requests. Pushing
// members back into the spreadsheet needs service-account credentials
// with write scope, which this deployment does not hold.
const MsgWriteRequiresCredentials = "Write operations require Google Service Account credentials. " +
	"Please add a service account secret to enable write functionality."

// SyncResponse is the envelope returned by the sheet-sync endpoint.
type SyncResponse struct {
	Success        bool              `json:"success"`
	Members        []Member          `json:"members,omitempty"`
	Bills          []MaintenanceBill `json:"bills,omitempty"`
	Message        string            `json:"message,omitempty"`
	Error          string            `json:"error,omitempty"`
	RequiresSecret bool              `json:"requiresSecret,omitempty"`
}

// ValidateRequest is the body of the validate-member endpoint.
type ValidateRequest struct {
	Email string `json:"email"`
}

// ValidateResponse is the envelope returned by the validate-member
// endpoint. Member is only set on a successful match.
type ValidateResponse struct {
	Valid  bool         `json:"valid"`
	Member *SheetMember `json:"member,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// RolesRequest is the body of the manage-roles endpoint.
type RolesRequest struct {
	Action       string `json:"action"`
	TargetUserID string `json:"targetUserId,omitempty"`
	Role         Role   `json:"role,omitempty"`
}

// RolesResponse is the envelope returned by the manage-roles endpoint.
type RolesResponse struct {
	Success bool          `json:"success,omitempty"`
	Users   []UserAccount `json:"users,omitempty"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}
