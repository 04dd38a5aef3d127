package models

// UserAccount is a registered application user: the stored profile
// joined with the role record. Accounts without an explicit role row
// default to user.
type UserAccount struct {
	UserID   string `json:"userId"`
	MemberID string `json:"memberId,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	FlatNo   string `json:"flatNo,omitempty"`
	Wing     string `json:"wing,omitempty"`
	Role     Role   `json:"role"`
}
