package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanPending              LoanStatus = "Pending"
	LoanApprovedByAccounting LoanStatus = "Approved by Accounting"
	LoanApproved             LoanStatus = "Approved"
	LoanRejected             LoanStatus = "Rejected"
	LoanPaidOff              LoanStatus = "Lunas"
)

// loanTransitions is the role-gated approval table. Lunas is reached only through payments.
var loanTransitions = map[Role]map[LoanStatus][]LoanStatus{
	RoleAccounting: {
		LoanPending: {LoanApprovedByAccounting, LoanRejected},
	},
	RoleManager: {
		LoanApprovedByAccounting: {LoanApproved, LoanRejected},
	},
	RoleAdmin: {
		LoanPending:              {LoanApprovedByAccounting, LoanApproved, LoanRejected},
		LoanApprovedByAccounting: {LoanApproved, LoanRejected},
	},
}

// CanTransition reports whether role may move a loan from s to target.
func (s LoanStatus) CanTransition(target LoanStatus, role Role) bool {
	for _, allowed := range loanTransitions[role][s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is possible.
func (s LoanStatus) IsTerminal() bool {
	return s == LoanRejected || s == LoanPaidOff
}

// PayoffEpsilon is the remaining principal at or below which a loan counts as paid off.
var PayoffEpsilon = decimal.NewFromInt(1)

// Loan is a member loan with a flat monthly interest rate.
type Loan struct {
	LoanID     int64 `json:"loanID"`
	MemberID   int64 `json:"memberID"`
	LoanTypeID int64 `json:"loanTypeID"`
	// ReceivableAccountID comes from the loan type; nil falls back to the configured receivable account.
	ReceivableAccountID *int64          `json:"receivableAccountID,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	TenorMonths         int             `json:"tenorMonths"`
	InterestRate        decimal.Decimal `json:"interestRate"` // monthly, in percent
	RemainingPrincipal  decimal.Decimal `json:"remainingPrincipal"`
	Status              LoanStatus      `json:"status"`
	Date                *time.Time      `json:"date,omitempty"` // disbursement date, set on final approval
	JournalID           *int64          `json:"journalID,omitempty"`
}

// PaymentStatus is the state of an installment payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentApproved PaymentStatus = "Approved"
	PaymentRejected PaymentStatus = "Rejected"
)

// LoanPayment is one installment payment of a loan.
type LoanPayment struct {
	PaymentID         int64           `json:"paymentID"`
	LoanID            int64           `json:"loanID"`
	InstallmentNumber int             `json:"installmentNumber"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	PaymentDate       time.Time       `json:"paymentDate"`
	Status            PaymentStatus   `json:"status"`
	JournalID         *int64          `json:"journalID,omitempty"`
}
