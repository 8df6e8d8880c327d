package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- loans ---

func (v *view) FindLoanByID(_ context.Context, loanID int64) (*domain.Loan, error) {
	st, done := v.begin()
	defer done()
	l, ok := st.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("loan %d: %w", loanID, apperrors.ErrNotFound)
	}
	return &l, nil
}

func (v *view) ListLoans(_ context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	st, done := v.begin()
	defer done()
	loans := make([]domain.Loan, 0, len(st.loans))
	for _, l := range st.loans {
		if status == "" || l.Status == status {
			loans = append(loans, l)
		}
	}
	slices.SortFunc(loans, func(a, b domain.Loan) int { return cmp.Compare(a.LoanID, b.LoanID) })
	return loans, nil
}

func (v *view) FindPaymentByID(_ context.Context, paymentID int64) (*domain.LoanPayment, error) {
	st, done := v.begin()
	defer done()
	p, ok := st.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %d: %w", paymentID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (v *view) ListPayments(_ context.Context, loanID int64) ([]domain.LoanPayment, error) {
	st, done := v.begin()
	defer done()
	var payments []domain.LoanPayment
	for _, p := range st.payments {
		if p.LoanID == loanID {
			payments = append(payments, p)
		}
	}
	slices.SortFunc(payments, func(a, b domain.LoanPayment) int {
		if c := cmp.Compare(a.InstallmentNumber, b.InstallmentNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.PaymentID, b.PaymentID)
	})
	return payments, nil
}

func (v *view) FindLoanForUpdate(ctx context.Context, loanID int64) (*domain.Loan, error) {
	return v.FindLoanByID(ctx, loanID)
}

func (v *view) FindPaymentForUpdate(ctx context.Context, paymentID int64) (*domain.LoanPayment, error) {
	return v.FindPaymentByID(ctx, paymentID)
}

func (v *view) InsertLoan(_ context.Context, loan domain.Loan) (int64, error) {
	st, done := v.begin()
	defer done()
	loan.LoanID = st.nextID()
	st.loans[loan.LoanID] = loan
	return loan.LoanID, nil
}

func (v *view) UpdateLoan(_ context.Context, loan domain.Loan) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.loans[loan.LoanID]; !ok {
		return fmt.Errorf("loan %d: %w", loan.LoanID, apperrors.ErrNotFound)
	}
	st.loans[loan.LoanID] = loan
	return nil
}

func (v *view) InsertPayment(_ context.Context, payment domain.LoanPayment) (int64, error) {
	st, done := v.begin()
	defer done()
	if _, ok := st.loans[payment.LoanID]; !ok {
		return 0, fmt.Errorf("loan %d: %w", payment.LoanID, apperrors.ErrNotFound)
	}
	payment.PaymentID = st.nextID()
	st.payments[payment.PaymentID] = payment
	return payment.PaymentID, nil
}

func (v *view) UpdatePayment(_ context.Context, payment domain.LoanPayment) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.payments[payment.PaymentID]; !ok {
		return fmt.Errorf("payment %d: %w", payment.PaymentID, apperrors.ErrNotFound)
	}
	st.payments[payment.PaymentID] = payment
	return nil
}

func (v *view) DeletePayment(_ context.Context, paymentID int64) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.payments[paymentID]; !ok {
		return fmt.Errorf("payment %d: %w", paymentID, apperrors.ErrNotFound)
	}
	delete(st.payments, paymentID)
	return nil
}

// --- savings ---

func (v *view) FindSavingByID(_ context.Context, savingID int64) (*domain.Saving, error) {
	st, done := v.begin()
	defer done()
	s, ok := st.savings[savingID]
	if !ok {
		return nil, fmt.Errorf("saving %d: %w", savingID, apperrors.ErrNotFound)
	}
	return &s, nil
}

func (v *view) FindSavingForUpdate(ctx context.Context, savingID int64) (*domain.Saving, error) {
	return v.FindSavingByID(ctx, savingID)
}

func (v *view) ListSavingsByMember(_ context.Context, memberID int64) ([]domain.Saving, error) {
	st, done := v.begin()
	defer done()
	var savings []domain.Saving
	for _, s := range st.savings {
		if s.MemberID == memberID {
			savings = append(savings, s)
		}
	}
	slices.SortFunc(savings, func(a, b domain.Saving) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.SavingID, b.SavingID)
	})
	return savings, nil
}

func (v *view) InsertSaving(_ context.Context, saving domain.Saving) (int64, error) {
	st, done := v.begin()
	defer done()
	saving.SavingID = st.nextID()
	st.savings[saving.SavingID] = saving
	return saving.SavingID, nil
}

func (v *view) UpdateSaving(_ context.Context, saving domain.Saving) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.savings[saving.SavingID]; !ok {
		return fmt.Errorf("saving %d: %w", saving.SavingID, apperrors.ErrNotFound)
	}
	st.savings[saving.SavingID] = saving
	return nil
}

func (v *view) LockMemberSavings(context.Context, int64, string) error { return nil }

func (v *view) ApprovedBalance(_ context.Context, memberID int64, savingType string) (decimal.Decimal, error) {
	st, done := v.begin()
	defer done()
	balance := decimal.Zero
	for _, s := range st.savings {
		if s.MemberID != memberID || s.SavingType != savingType || s.Status != domain.SavingApproved {
			continue
		}
		if s.Kind == domain.SavingWithdrawal {
			balance = balance.Sub(s.Amount)
		} else {
			balance = balance.Add(s.Amount)
		}
	}
	return balance, nil
}
