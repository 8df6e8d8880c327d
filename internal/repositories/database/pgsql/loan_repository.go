package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxLoanRepository struct {
	db DBTX
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

// The receivable account comes from the loan type.
const loanSelect = `
	SELECT l.id, l.member_id, l.loan_type_id, lt.receivable_account_id, l.amount, l.tenor_months,
	       l.interest_rate, l.remaining_principal, l.status, l.date, l.journal_id
	FROM loans l
	JOIN loan_types lt ON lt.id = l.loan_type_id`

func scanLoan(row pgx.Row) (domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.LoanID, &l.MemberID, &l.LoanTypeID, &l.ReceivableAccountID, &l.Amount, &l.TenorMonths,
		&l.InterestRate, &l.RemainingPrincipal, &l.Status, &l.Date, &l.JournalID)
	return l, err
}

const paymentColumns = `id, loan_id, installment_number, amount_paid, payment_date, status, journal_id`

func scanPayment(row pgx.Row) (domain.LoanPayment, error) {
	var p domain.LoanPayment
	err := row.Scan(&p.PaymentID, &p.LoanID, &p.InstallmentNumber, &p.AmountPaid, &p.PaymentDate, &p.Status, &p.JournalID)
	return p, err
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	l, err := scanLoan(r.db.QueryRow(ctx, loanSelect+` WHERE l.id = $1`, loanID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("loan %d", loanID))
	}
	return &l, nil
}

// FindLoanForUpdate locks only the loan row; loan types are reference data.
func (r *PgxLoanRepository) FindLoanForUpdate(ctx context.Context, loanID int64) (*domain.Loan, error) {
	l, err := scanLoan(r.db.QueryRow(ctx, loanSelect+` WHERE l.id = $1 FOR UPDATE OF l`, loanID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("loan %d", loanID))
	}
	return &l, nil
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	rows, err := r.db.Query(ctx, loanSelect+` WHERE ($1 = '' OR l.status = $1) ORDER BY l.id`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
}

func (r *PgxLoanRepository) InsertLoan(ctx context.Context, loan domain.Loan) (int64, error) {
	query := `
		INSERT INTO loans (member_id, loan_type_id, amount, tenor_months, interest_rate, remaining_principal, status, date, journal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, loan.MemberID, loan.LoanTypeID, loan.Amount, loan.TenorMonths,
		loan.InterestRate, loan.RemainingPrincipal, loan.Status, loan.Date, loan.JournalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert loan for member %d: %w", loan.MemberID, err)
	}
	return id, nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE loans
		SET status = $2, date = $3, remaining_principal = $4, journal_id = $5
		WHERE id = $1;
	`, loan.LoanID, loan.Status, loan.Date, loan.RemainingPrincipal, loan.JournalID)
	if err != nil {
		return fmt.Errorf("failed to update loan %d: %w", loan.LoanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("loan %d not found for update", loan.LoanID))
	}
	return nil
}

func (r *PgxLoanRepository) FindPaymentByID(ctx context.Context, paymentID int64) (*domain.LoanPayment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM loan_payments WHERE id = $1`, paymentID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("payment %d", paymentID))
	}
	return &p, nil
}

func (r *PgxLoanRepository) FindPaymentForUpdate(ctx context.Context, paymentID int64) (*domain.LoanPayment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM loan_payments WHERE id = $1 FOR UPDATE`, paymentID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("payment %d", paymentID))
	}
	return &p, nil
}

func (r *PgxLoanRepository) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM loan_payments WHERE loan_id = $1 ORDER BY installment_number, id`, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of loan %d: %w", loanID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LoanPayment, error) {
		return scanPayment(row)
	})
}

func (r *PgxLoanRepository) InsertPayment(ctx context.Context, payment domain.LoanPayment) (int64, error) {
	query := `
		INSERT INTO loan_payments (loan_id, installment_number, amount_paid, payment_date, status, journal_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, payment.LoanID, payment.InstallmentNumber, payment.AmountPaid,
		payment.PaymentDate, payment.Status, payment.JournalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert installment %d of loan %d: %w", payment.InstallmentNumber, payment.LoanID, err)
	}
	return id, nil
}

func (r *PgxLoanRepository) UpdatePayment(ctx context.Context, payment domain.LoanPayment) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE loan_payments
		SET status = $2, amount_paid = $3, payment_date = $4, journal_id = $5
		WHERE id = $1;
	`, payment.PaymentID, payment.Status, payment.AmountPaid, payment.PaymentDate, payment.JournalID)
	if err != nil {
		return fmt.Errorf("failed to update payment %d: %w", payment.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment %d not found for update", payment.PaymentID))
	}
	return nil
}

func (r *PgxLoanRepository) DeletePayment(ctx context.Context, paymentID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM loan_payments WHERE id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment %d not found for delete", paymentID))
	}
	return nil
}
