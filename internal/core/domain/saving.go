package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingKind distinguishes deposits from voluntary withdrawals.
type SavingKind string

const (
	SavingDeposit    SavingKind = "Setoran"
	SavingWithdrawal SavingKind = "Penarikan"
)

// SavingStatus is the approval state of a saving transaction.
type SavingStatus string

const (
	SavingPending  SavingStatus = "Pending"
	SavingApproved SavingStatus = "Approved"
	SavingRejected SavingStatus = "Rejected"
)

// Saving is a member savings transaction. SavingType is the human name of the
// savings product (e.g. "Simpanan Wajib") and doubles as its liability account name.
type Saving struct {
	SavingID   int64           `json:"savingID"`
	MemberID   int64           `json:"memberID"`
	SavingType string          `json:"savingType"`
	Kind       SavingKind      `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Status     SavingStatus    `json:"status"`
	JournalID  *int64          `json:"journalID,omitempty"`
}
