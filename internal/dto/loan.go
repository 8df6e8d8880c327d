package dto

import (
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyLoanRequest defines the data needed to submit a loan application.
type ApplyLoanRequest struct {
	MemberID     int64           `json:"memberID" binding:"required,gt=0"`
	LoanTypeID   int64           `json:"loanTypeID" binding:"required,gt=0"`
	Amount       decimal.Decimal `json:"amount" binding:"dgt0"`
	TenorMonths  int             `json:"tenorMonths" binding:"required,gt=0"`
	InterestRate decimal.Decimal `json:"interestRate" binding:"dgte0"` // monthly, in percent
}

// ToLoan converts the request to a pending loan.
func (r ApplyLoanRequest) ToLoan() domain.Loan {
	return domain.Loan{
		MemberID:     r.MemberID,
		LoanTypeID:   r.LoanTypeID,
		Amount:       r.Amount,
		TenorMonths:  r.TenorMonths,
		InterestRate: r.InterestRate,
	}
}

// UpdateLoanStatusRequest moves a loan through the approval table.
type UpdateLoanStatusRequest struct {
	Status domain.LoanStatus `json:"status" binding:"required,oneof='Approved by Accounting' Approved Rejected"`
}

// InstallmentRequest identifies the installment being paid.
type InstallmentRequest struct {
	InstallmentNumber int `json:"installmentNumber" binding:"required,gt=0"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status domain.LoanStatus `form:"status"`
}
