package domain

import "strconv"

// Effect is a side effect (notification) to run after the ledger transaction commits.
// Dispatch failures never roll back the ledger change.
type Effect struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// MemberRecipient addresses a member's notification inbox.
func MemberRecipient(memberID int64) string {
	return "member:" + strconv.FormatInt(memberID, 10)
}

// RoleRecipient addresses every user holding a back-office role.
func RoleRecipient(role Role) string {
	return "role:" + string(role)
}
