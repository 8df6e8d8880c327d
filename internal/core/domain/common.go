package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy holds the actor (JWT subject) that caused the change.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// Role is the back-office role of an actor, taken from the auth token.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccounting Role = "akunting"
	RoleManager    Role = "manager"
	RoleMember     Role = "anggota"
)

// Actor identifies who triggered an orchestrated operation.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}
