package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// LoanReader defines read operations for loans and their payments
type LoanReader interface {
	// FindLoanByID retrieves a loan including the receivable account of its loan type.
	FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error)

	// ListLoans lists loans, optionally filtered by status (empty means all).
	ListLoans(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)

	// FindPaymentByID retrieves a single installment payment.
	FindPaymentByID(ctx context.Context, paymentID int64) (*domain.LoanPayment, error)

	// ListPayments returns every payment of a loan ordered by installment number.
	ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error)
}

// LoanWriter defines write operations for loans and their payments
type LoanWriter interface {
	// FindLoanForUpdate retrieves and row-locks a loan.
	FindLoanForUpdate(ctx context.Context, loanID int64) (*domain.Loan, error)

	// FindPaymentForUpdate retrieves and row-locks a payment.
	FindPaymentForUpdate(ctx context.Context, paymentID int64) (*domain.LoanPayment, error)

	// InsertLoan stores a new loan application.
	InsertLoan(ctx context.Context, loan domain.Loan) (int64, error)

	// UpdateLoan stores status, date, remaining principal and disbursement journal.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// InsertPayment stores an installment payment.
	InsertPayment(ctx context.Context, payment domain.LoanPayment) (int64, error)

	// UpdatePayment stores status, amount, date and journal of a payment.
	UpdatePayment(ctx context.Context, payment domain.LoanPayment) error

	// DeletePayment removes a payment row.
	DeletePayment(ctx context.Context, paymentID int64) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
