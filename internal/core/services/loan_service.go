package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// loanService drives the loan lifecycle and installment payments.
type loanService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	loanRepo  portsrepo.LoanReader
	engine    portssvc.JournalEngine
	directory portssvc.AccountDirectory
}

// NewLoanService creates a new loan service.
func NewLoanService(uow portsrepo.UnitOfWork, loanRepo portsrepo.LoanReader, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(options...),
		uow:         uow,
		loanRepo:    loanRepo,
		engine:      engine,
		directory:   directory,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (s *loanService) ListPayments(ctx context.Context, loanID int64) ([]domain.LoanPayment, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	payments, err := s.loanRepo.ListPayments(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of loan %d: %w", loanID, err)
	}
	return payments, nil
}

func (s *loanService) Schedule(ctx context.Context, loanID int64) ([]accounting.Installment, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return accounting.Schedule(loan.Amount, loan.TenorMonths, loan.InterestRate), nil
}

// ApplyForLoan stores a Pending loan application.
func (s *loanService) ApplyForLoan(ctx context.Context, loan domain.Loan, actor domain.Actor) (*domain.LoanOutcome, error) {
	switch {
	case !loan.Amount.IsPositive():
		return nil, apperrors.NewValidationError("loan amount must be greater than zero")
	case loan.TenorMonths <= 0:
		return nil, apperrors.NewValidationError("tenor must be at least one month")
	case loan.InterestRate.IsNegative():
		return nil, apperrors.NewValidationError("interest rate cannot be negative")
	}

	loan.Status = domain.LoanPending
	loan.RemainingPrincipal = decimal.Zero
	loan.Date = nil
	loan.JournalID = nil

	var stored *domain.Loan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loanID, err := repos.Loans().InsertLoan(ctx, loan)
		if err != nil {
			return fmt.Errorf("failed to insert loan: %w", err)
		}
		stored, err = repos.Loans().FindLoanByID(ctx, loanID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit loan application", slog.Int64("member_id", loan.MemberID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan application submitted", slog.Int64("loan_id", stored.LoanID), slog.Int64("member_id", stored.MemberID))
	return &domain.LoanOutcome{
		Loan: *stored,
		Effects: []domain.Effect{{
			Recipient: domain.RoleRecipient(domain.RoleAccounting),
			Subject:   "Pengajuan pinjaman baru",
			Message:   fmt.Sprintf("Pinjaman #%d sebesar %s menunggu persetujuan.", stored.LoanID, utils.FormatRupiah(stored.Amount)),
		}},
	}, nil
}

// ApproveLoan applies one step of the role-gated approval table.
// Final approval disburses the loan: Dr loan receivable / Cr Kas for the full amount.
func (s *loanService) ApproveLoan(ctx context.Context, loanID int64, target domain.LoanStatus, actor domain.Actor) (*domain.LoanOutcome, error) {
	var loan *domain.Loan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		var err error
		loan, err = repos.Loans().FindLoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}

		if !loan.Status.CanTransition(target, actor.Role) {
			if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleAccounting && actor.Role != domain.RoleManager {
				return fmt.Errorf("%w: role %q cannot approve loans", apperrors.ErrForbidden, actor.Role)
			}
			return fmt.Errorf("%w: role %q cannot move loan %d from %q to %q",
				apperrors.ErrInvalidTransition, actor.Role, loanID, loan.Status, target)
		}

		loan.Status = target
		if target == domain.LoanApproved {
			if err := s.disburse(ctx, repos, loan, actor); err != nil {
				return err
			}
		}

		if err := repos.Loans().UpdateLoan(ctx, *loan); err != nil {
			return fmt.Errorf("failed to update loan %d: %w", loanID, err)
		}
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to change loan status", slog.Int64("loan_id", loanID), slog.String("target", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Loan status changed", slog.Int64("loan_id", loanID), slog.String("status", string(loan.Status)))
	return &domain.LoanOutcome{
		Loan: *loan,
		Effects: []domain.Effect{{
			Recipient: domain.MemberRecipient(loan.MemberID),
			Subject:   "Status pinjaman",
			Message:   fmt.Sprintf("Status pinjaman #%d Anda sekarang: %s.", loan.LoanID, loan.Status),
		}},
	}, nil
}

// disburse sets the disbursement date and remaining principal and posts the disbursement journal.
func (s *loanService) disburse(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, actor domain.Actor) error {
	now := s.now()
	loan.Date = &now
	loan.RemainingPrincipal = loan.Amount

	cashID, receivableID, err := s.resolveLoanAccounts(ctx, repos, loan)
	if err != nil {
		return err
	}

	journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
		Date:        now,
		Description: fmt.Sprintf("Pencairan pinjaman #%d anggota #%d", loan.LoanID, loan.MemberID),
		Lines: []domain.JournalLine{
			domain.DebitLine(receivableID, loan.Amount),
			domain.CreditLine(cashID, loan.Amount),
		},
		CreatedBy: actor.UserID,
	})
	if err != nil {
		return err
	}
	loan.JournalID = &journalID
	return nil
}

// resolveLoanAccounts returns Kas and the receivable account of the loan's type,
// falling back to the configured receivable account.
func (s *loanService) resolveLoanAccounts(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan) (cashID, receivableID int64, err error) {
	names := s.directory.Names()
	wanted := []string{names.Cash}
	if loan.ReceivableAccountID == nil {
		wanted = append(wanted, names.LoanReceivable)
	}
	ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), wanted...)
	if err != nil {
		return 0, 0, err
	}
	if loan.ReceivableAccountID != nil {
		return ids[names.Cash], *loan.ReceivableAccountID, nil
	}
	return ids[names.Cash], ids[names.LoanReceivable], nil
}

// RecordInstallmentPayment records installment n as Approved and posts it.
func (s *loanService) RecordInstallmentPayment(ctx context.Context, loanID int64, installmentNumber int, actor domain.Actor) (*domain.PaymentOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var outcome *domain.PaymentOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, payments, err := s.lockPayableLoan(ctx, repos, loanID)
		if err != nil {
			return err
		}
		if err := checkNextInstallment(payments, installmentNumber); err != nil {
			return err
		}

		payment := domain.LoanPayment{
			LoanID:            loanID,
			InstallmentNumber: installmentNumber,
			PaymentDate:       s.now(),
		}
		inst, err := s.applyPayment(ctx, repos, loan, &payment, approvedCount(payments)+1, actor)
		if err != nil {
			return err
		}

		payment.PaymentID, err = repos.Loans().InsertPayment(ctx, payment)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		outcome = paymentOutcome(loan, payment, inst)
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to record installment payment", slog.Int64("loan_id", loanID), slog.Int("installment", installmentNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Installment payment recorded",
		slog.Int64("loan_id", loanID),
		slog.Int("installment", installmentNumber),
		slog.String("remaining_principal", outcome.Loan.RemainingPrincipal.String()))
	return outcome, nil
}

// SubmitInstallmentPayment stores a Pending claim for installment n. Nothing is posted until approval.
func (s *loanService) SubmitInstallmentPayment(ctx context.Context, loanID int64, installmentNumber int, actor domain.Actor) (*domain.PaymentOutcome, error) {
	var outcome *domain.PaymentOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, payments, err := s.lockPayableLoan(ctx, repos, loanID)
		if err != nil {
			return err
		}
		if err := checkNextInstallment(payments, installmentNumber); err != nil {
			return err
		}

		inst := accounting.InstallmentDetails(loan.Amount, loan.TenorMonths, loan.InterestRate, installmentNumber).Rounded()
		payment := domain.LoanPayment{
			LoanID:            loanID,
			InstallmentNumber: installmentNumber,
			AmountPaid:        inst.Total,
			PaymentDate:       s.now(),
			Status:            domain.PaymentPending,
		}
		payment.PaymentID, err = repos.Loans().InsertPayment(ctx, payment)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		outcome = paymentOutcome(loan, payment, inst)
		outcome.Effects = []domain.Effect{{
			Recipient: domain.RoleRecipient(domain.RoleAccounting),
			Subject:   "Pembayaran angsuran menunggu verifikasi",
			Message:   fmt.Sprintf("Angsuran ke-%d pinjaman #%d sebesar %s menunggu verifikasi.", installmentNumber, loanID, utils.FormatRupiah(inst.Total)),
		}}
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to submit installment payment", slog.Int64("loan_id", loanID), slog.Int("installment", installmentNumber))
		return nil, err
	}
	return outcome, nil
}

// ApprovePayment applies a Pending payment. Earlier installments must already be approved.
func (s *loanService) ApprovePayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var outcome *domain.PaymentOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, payment, payments, err := s.lockPayment(ctx, repos, paymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentPending {
			return fmt.Errorf("%w: payment %d is %s", apperrors.ErrInvalidTransition, paymentID, payment.Status)
		}
		if loan.Status != domain.LoanApproved {
			return fmt.Errorf("%w: loan %d is %s", apperrors.ErrValidation, loan.LoanID, loan.Status)
		}
		approved := approvedCount(payments)
		if payment.InstallmentNumber != approved+1 {
			return fmt.Errorf("%w: installment %d cannot be approved before installment %d",
				apperrors.ErrOutOfSequence, payment.InstallmentNumber, approved+1)
		}

		inst, err := s.applyPayment(ctx, repos, loan, payment, approved+1, actor)
		if err != nil {
			return err
		}
		if err := repos.Loans().UpdatePayment(ctx, *payment); err != nil {
			return fmt.Errorf("failed to update payment %d: %w", paymentID, err)
		}
		outcome = paymentOutcome(loan, *payment, inst)
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to approve installment payment", slog.Int64("payment_id", paymentID))
		return nil, err
	}
	return outcome, nil
}

// RejectPayment marks a Pending payment Rejected without any posting.
func (s *loanService) RejectPayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var outcome *domain.PaymentOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, payment, _, err := s.lockPayment(ctx, repos, paymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentPending {
			return fmt.Errorf("%w: payment %d is %s", apperrors.ErrInvalidTransition, paymentID, payment.Status)
		}
		payment.Status = domain.PaymentRejected
		if err := repos.Loans().UpdatePayment(ctx, *payment); err != nil {
			return fmt.Errorf("failed to update payment %d: %w", paymentID, err)
		}
		outcome = &domain.PaymentOutcome{
			Loan:    *loan,
			Payment: *payment,
			Effects: []domain.Effect{{
				Recipient: domain.MemberRecipient(loan.MemberID),
				Subject:   "Pembayaran angsuran ditolak",
				Message:   fmt.Sprintf("Pembayaran angsuran ke-%d pinjaman #%d ditolak oleh %s.", payment.InstallmentNumber, loan.LoanID, actor.UserID),
			}},
		}
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to reject installment payment", slog.Int64("payment_id", paymentID))
		return nil, err
	}
	return outcome, nil
}

// CancelInstallmentPayment undoes an approved payment: the principal goes back onto the loan,
// a paid-off loan returns to Approved, and the payment row and its journal are deleted.
// Only the latest installment can be cancelled so the sequence stays gap-free.
func (s *loanService) CancelInstallmentPayment(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var outcome *domain.PaymentOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, payment, payments, err := s.lockPayment(ctx, repos, paymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentApproved {
			return fmt.Errorf("%w: only approved payments can be cancelled, payment %d is %s",
				apperrors.ErrInvalidTransition, paymentID, payment.Status)
		}
		if latest := latestActiveInstallment(payments); payment.InstallmentNumber != latest {
			return fmt.Errorf("%w: cancel installment %d before installment %d",
				apperrors.ErrOutOfSequence, latest, payment.InstallmentNumber)
		}

		// Restore what the payment actually credited to the receivable.
		inst := accounting.InstallmentDetails(loan.Amount, loan.TenorMonths, loan.InterestRate, payment.InstallmentNumber).Rounded()
		inst.Principal = payment.AmountPaid.Sub(inst.Interest)
		inst.Total = payment.AmountPaid
		loan.RemainingPrincipal = decimal.Min(loan.Amount, loan.RemainingPrincipal.Add(inst.Principal))
		if loan.Status == domain.LoanPaidOff {
			loan.Status = domain.LoanApproved
		}

		if err := repos.Loans().UpdateLoan(ctx, *loan); err != nil {
			return fmt.Errorf("failed to update loan %d: %w", loan.LoanID, err)
		}
		if err := repos.Loans().DeletePayment(ctx, paymentID); err != nil {
			return fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
		}
		if payment.JournalID != nil {
			if err := s.engine.DeleteJournal(ctx, repos, *payment.JournalID); err != nil {
				return err
			}
		}

		outcome = paymentOutcome(loan, *payment, inst)
		outcome.Effects = []domain.Effect{{
			Recipient: domain.MemberRecipient(loan.MemberID),
			Subject:   "Pembayaran angsuran dibatalkan",
			Message:   fmt.Sprintf("Pembayaran angsuran ke-%d pinjaman #%d dibatalkan oleh %s.", payment.InstallmentNumber, loan.LoanID, actor.UserID),
		}}
		return nil
	})
	if err != nil {
		s.logRuleError(ctx, err, "Failed to cancel installment payment", slog.Int64("payment_id", paymentID))
		return nil, err
	}

	s.LogInfo(ctx, "Installment payment cancelled", slog.Int64("payment_id", paymentID), slog.Int64("loan_id", outcome.Loan.LoanID))
	return outcome, nil
}

// lockPayableLoan locks a loan that must be Approved and returns its payments.
func (s *loanService) lockPayableLoan(ctx context.Context, repos portsrepo.TxRepositories, loanID int64) (*domain.Loan, []domain.LoanPayment, error) {
	loan, err := repos.Loans().FindLoanForUpdate(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status != domain.LoanApproved {
		return nil, nil, fmt.Errorf("%w: loan %d is %s, installments require an Approved loan", apperrors.ErrValidation, loanID, loan.Status)
	}
	payments, err := repos.Loans().ListPayments(ctx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments of loan %d: %w", loanID, err)
	}
	return loan, payments, nil
}

// lockPayment locks the payment's loan first, then the payment, so every payment
// operation on a loan takes the locks in the same order.
func (s *loanService) lockPayment(ctx context.Context, repos portsrepo.TxRepositories, paymentID int64) (*domain.Loan, *domain.LoanPayment, []domain.LoanPayment, error) {
	unlocked, err := repos.Loans().FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, nil, err
	}
	loan, err := repos.Loans().FindLoanForUpdate(ctx, unlocked.LoanID)
	if err != nil {
		return nil, nil, nil, err
	}
	payment, err := repos.Loans().FindPaymentForUpdate(ctx, paymentID)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := repos.Loans().ListPayments(ctx, loan.LoanID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list payments of loan %d: %w", loan.LoanID, err)
	}
	return loan, payment, payments, nil
}

// applyPayment computes the split of an installment, reduces the remaining principal,
// flips the loan to Lunas when it is paid off and posts Dr Kas / Cr receivable / Cr interest income.
// approvedAfter is the number of approved installments including this one.
//
// Components are posted rounded to whole sen. The installment that pays the loan off
// credits exactly the remaining principal, so the receivable nets to zero.
func (s *loanService) applyPayment(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, payment *domain.LoanPayment, approvedAfter int, actor domain.Actor) (accounting.Installment, error) {
	inst := accounting.InstallmentDetails(loan.Amount, loan.TenorMonths, loan.InterestRate, payment.InstallmentNumber).Rounded()

	remaining := loan.RemainingPrincipal.Sub(inst.Principal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if remaining.LessThanOrEqual(domain.PayoffEpsilon) || approvedAfter >= loan.TenorMonths {
		loan.Status = domain.LoanPaidOff
		inst.Principal = loan.RemainingPrincipal
		inst.Total = inst.Principal.Add(inst.Interest)
		remaining = decimal.Zero
	}
	loan.RemainingPrincipal = remaining

	names := s.directory.Names()
	cashID, receivableID, err := s.resolveLoanAccounts(ctx, repos, loan)
	if err != nil {
		return inst, err
	}
	lines := []domain.JournalLine{
		domain.DebitLine(cashID, inst.Total),
		domain.CreditLine(receivableID, inst.Principal),
	}
	if inst.Interest.IsPositive() {
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), names.InterestIncome)
		if err != nil {
			return inst, err
		}
		lines = append(lines, domain.CreditLine(ids[names.InterestIncome], inst.Interest))
	}

	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = s.now()
	}
	journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
		Date:        payment.PaymentDate,
		Description: fmt.Sprintf("Angsuran ke-%d pinjaman #%d", payment.InstallmentNumber, loan.LoanID),
		Lines:       lines,
		CreatedBy:   actor.UserID,
	})
	if err != nil {
		return inst, err
	}

	payment.AmountPaid = inst.Total
	payment.Status = domain.PaymentApproved
	payment.JournalID = &journalID

	if err := repos.Loans().UpdateLoan(ctx, *loan); err != nil {
		return inst, fmt.Errorf("failed to update loan %d: %w", loan.LoanID, err)
	}
	return inst, nil
}

// checkNextInstallment enforces strict sequencing: n must not be paid already and
// must follow every non-rejected payment of the loan.
func checkNextInstallment(payments []domain.LoanPayment, n int) error {
	active := 0
	for _, p := range payments {
		if p.InstallmentNumber == n && p.Status == domain.PaymentApproved {
			return fmt.Errorf("%w: installment %d", apperrors.ErrAlreadyPaid, n)
		}
		if p.Status != domain.PaymentRejected {
			active++
		}
	}
	if n != active+1 {
		return fmt.Errorf("%w: expected installment %d, got %d", apperrors.ErrOutOfSequence, active+1, n)
	}
	return nil
}

func approvedCount(payments []domain.LoanPayment) int {
	n := 0
	for _, p := range payments {
		if p.Status == domain.PaymentApproved {
			n++
		}
	}
	return n
}

func latestActiveInstallment(payments []domain.LoanPayment) int {
	latest := 0
	for _, p := range payments {
		if p.Status != domain.PaymentRejected && p.InstallmentNumber > latest {
			latest = p.InstallmentNumber
		}
	}
	return latest
}

func paymentOutcome(loan *domain.Loan, payment domain.LoanPayment, inst accounting.Installment) *domain.PaymentOutcome {
	outcome := &domain.PaymentOutcome{
		Loan:      *loan,
		Payment:   payment,
		Principal: inst.Principal,
		Interest:  inst.Interest,
	}
	if payment.Status == domain.PaymentApproved {
		msg := fmt.Sprintf("Angsuran ke-%d pinjaman #%d sebesar %s diterima. Sisa pokok %s.",
			payment.InstallmentNumber, loan.LoanID, utils.FormatRupiah(inst.Total), utils.FormatRupiah(loan.RemainingPrincipal))
		if loan.Status == domain.LoanPaidOff {
			msg = fmt.Sprintf("Pinjaman #%d telah lunas. Terima kasih.", loan.LoanID)
		}
		outcome.Effects = []domain.Effect{{
			Recipient: domain.MemberRecipient(loan.MemberID),
			Subject:   "Pembayaran angsuran",
			Message:   msg,
		}}
	}
	return outcome
}

// logRuleError keeps business-rule rejections out of the error log.
func (s *loanService) logRuleError(ctx context.Context, err error, msg string, keyvals ...any) {
	if isRuleViolation(err) {
		s.LogInfo(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// isRuleViolation reports whether err is a user-correctable rejection rather than a fault.
func isRuleViolation(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrForbidden,
		apperrors.ErrOutOfSequence, apperrors.ErrAlreadyPaid, apperrors.ErrInvalidTransition,
		apperrors.ErrInsufficientBalance, apperrors.ErrPeriodClosed, apperrors.ErrConflict,
		apperrors.ErrDuplicate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
