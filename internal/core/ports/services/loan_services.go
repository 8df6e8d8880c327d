package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/accounting"
)

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error)
	ListLoans(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
	ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error)

	// Schedule returns the full installment table of a loan.
	Schedule(ctx context.Context, loanID int64) ([]accounting.Installment, error)
}

// LoanWriterSvc defines the loan lifecycle and installment orchestrators
type LoanWriterSvc interface {
	// ApplyForLoan stores a Pending loan application.
	ApplyForLoan(ctx context.Context, loan domain.Loan, actor domain.Actor) (*domain.LoanOutcome, error)

	// ApproveLoan moves a loan through the role-gated approval table. Final approval disburses it.
	ApproveLoan(ctx context.Context, loanID int64, target domain.LoanStatus, actor domain.Actor) (*domain.LoanOutcome, error)

	// RecordInstallmentPayment records and approves installment n in one step.
	RecordInstallmentPayment(ctx context.Context, loanID int64, installmentNumber int, actor domain.Actor) (*domain.PaymentOutcome, error)

	// SubmitInstallmentPayment stores a Pending payment claim for installment n without any posting.
	SubmitInstallmentPayment(ctx context.Context, loanID int64, installmentNumber int, actor domain.Actor) (*domain.PaymentOutcome, error)

	// ApprovePayment applies the financial effect of a Pending payment.
	ApprovePayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error)

	// RejectPayment marks a Pending payment Rejected; it frees the installment number.
	RejectPayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error)

	// CancelInstallmentPayment fully undoes an approved payment.
	CancelInstallmentPayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
