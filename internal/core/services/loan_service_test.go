package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoanServiceTestSuite struct {
	suite.Suite
	f        *ledgerFixture
	memberID int64
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.f = newLedgerFixture(suite.T(), time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))
	suite.memberID = 7
}

// disbursedLoan applies for and fully approves a loan through both approval steps.
func (suite *LoanServiceTestSuite) disbursedLoan(amount string, tenor int, rate string) domain.Loan {
	ctx := context.Background()
	applied, err := suite.f.svc.Loan.ApplyForLoan(ctx, domain.Loan{
		MemberID:     suite.memberID,
		LoanTypeID:   1,
		Amount:       dec(amount),
		TenorMonths:  tenor,
		InterestRate: dec(rate),
	}, member)
	suite.Require().NoError(err)
	suite.Equal(domain.LoanPending, applied.Loan.Status)

	_, err = suite.f.svc.Loan.ApproveLoan(ctx, applied.Loan.LoanID, domain.LoanApprovedByAccounting, accountant)
	suite.Require().NoError(err)
	approved, err := suite.f.svc.Loan.ApproveLoan(ctx, applied.Loan.LoanID, domain.LoanApproved, manager)
	suite.Require().NoError(err)
	return approved.Loan
}

func (suite *LoanServiceTestSuite) TestApproveLoan_DisbursesOnFinalApproval() {
	loan := suite.disbursedLoan("12000000", 12, "2")

	suite.Equal(domain.LoanApproved, loan.Status)
	suite.True(loan.RemainingPrincipal.Equal(dec("12000000")))
	suite.Require().NotNil(loan.Date)
	suite.True(loan.Date.Equal(suite.f.now))
	suite.Require().NotNil(loan.JournalID)

	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable).Equal(dec("12000000")))
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.Cash).Equal(dec("-12000000")))
	suite.f.requireBalancedLedger(suite.T())
}

func (suite *LoanServiceTestSuite) TestApproveLoan_RoleGatedTransitions() {
	ctx := context.Background()
	applied, err := suite.f.svc.Loan.ApplyForLoan(ctx, domain.Loan{MemberID: suite.memberID, Amount: dec("1000000"), TenorMonths: 10, InterestRate: dec("1")}, member)
	suite.Require().NoError(err)
	loanID := applied.Loan.LoanID

	tests := []struct {
		name   string
		target domain.LoanStatus
		actor  domain.Actor
		err    error
	}{
		{"member cannot approve", domain.LoanApproved, member, apperrors.ErrForbidden},
		{"manager cannot skip accounting", domain.LoanApproved, manager, apperrors.ErrInvalidTransition},
		{"accounting cannot give final approval", domain.LoanApproved, accountant, apperrors.ErrInvalidTransition},
		{"payoff only through payments", domain.LoanPaidOff, admin, apperrors.ErrInvalidTransition},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.f.svc.Loan.ApproveLoan(ctx, loanID, tt.target, tt.actor)
			suite.ErrorIs(err, tt.err)
		})
	}

	rejected, err := suite.f.svc.Loan.ApproveLoan(ctx, loanID, domain.LoanRejected, accountant)
	suite.Require().NoError(err)
	suite.Equal(domain.LoanRejected, rejected.Loan.Status)
	suite.Nil(rejected.Loan.JournalID)

	_, err = suite.f.svc.Loan.ApproveLoan(ctx, loanID, domain.LoanApproved, admin)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition, "rejected is terminal")
}

func (suite *LoanServiceTestSuite) TestApplyForLoan_Validation() {
	ctx := context.Background()
	for name, loan := range map[string]domain.Loan{
		"zero amount":   {Amount: decimal.Zero, TenorMonths: 12, InterestRate: dec("1")},
		"zero tenor":    {Amount: dec("100"), TenorMonths: 0, InterestRate: dec("1")},
		"negative rate": {Amount: dec("100"), TenorMonths: 12, InterestRate: dec("-1")},
	} {
		suite.Run(name, func() {
			_, err := suite.f.svc.Loan.ApplyForLoan(ctx, loan, member)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *LoanServiceTestSuite) TestFullRepaymentSchedule() {
	ctx := context.Background()
	loan := suite.disbursedLoan("12000000", 12, "2")

	first, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 1, accountant)
	suite.Require().NoError(err)
	suite.True(first.Principal.Equal(dec("1000000")))
	suite.True(first.Interest.Equal(dec("240000")))
	suite.True(first.Payment.AmountPaid.Equal(dec("1240000")))
	suite.True(first.Loan.RemainingPrincipal.Equal(dec("11000000")))
	suite.Equal(domain.LoanApproved, first.Loan.Status)

	var last *domain.PaymentOutcome
	for n := 2; n <= 12; n++ {
		last, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, n, accountant)
		suite.Require().NoError(err, "installment %d", n)
	}
	suite.True(last.Interest.Equal(dec("20000")))
	suite.True(last.Loan.RemainingPrincipal.IsZero())
	suite.Equal(domain.LoanPaidOff, last.Loan.Status)
	suite.Require().Len(last.Effects, 1)
	suite.Contains(last.Effects[0].Message, "lunas")

	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable).IsZero())
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.InterestIncome).Equal(dec("1560000")))
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.Cash).Equal(dec("1560000")))
	suite.f.requireBalancedLedger(suite.T())

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 13, accountant)
	suite.ErrorIs(err, apperrors.ErrValidation, "a paid-off loan takes no more installments")
}

func (suite *LoanServiceTestSuite) TestUnevenPrincipalSettlesReceivableExactly() {
	ctx := context.Background()
	loan := suite.disbursedLoan("10000000", 3, "1")

	var outcomes []*domain.PaymentOutcome
	for n := 1; n <= 3; n++ {
		o, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, n, accountant)
		suite.Require().NoError(err, "installment %d", n)
		outcomes = append(outcomes, o)
	}
	suite.True(outcomes[0].Principal.Equal(dec("3333333.33")), "principal %s", outcomes[0].Principal)
	suite.True(outcomes[1].Interest.Equal(dec("66666.67")), "interest %s", outcomes[1].Interest)
	suite.True(outcomes[1].Loan.RemainingPrincipal.Equal(dec("3333333.34")))

	last := outcomes[2]
	suite.Equal(domain.LoanPaidOff, last.Loan.Status)
	suite.True(last.Loan.RemainingPrincipal.IsZero(), "remaining %s", last.Loan.RemainingPrincipal)
	suite.True(last.Principal.Equal(dec("3333333.34")), "final principal %s", last.Principal)
	suite.True(last.Payment.AmountPaid.Equal(dec("3366666.67")))

	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable).IsZero(),
		"receivable %s", suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable))
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.InterestIncome).Equal(dec("200000")))
	suite.f.requireBalancedLedger(suite.T())

	cancelled, err := suite.f.svc.Loan.CancelInstallmentPayment(ctx, last.Payment.PaymentID, accountant)
	suite.Require().NoError(err)
	suite.True(cancelled.Loan.RemainingPrincipal.Equal(dec("3333333.34")), "restored %s", cancelled.Loan.RemainingPrincipal)
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable).Equal(dec("3333333.34")))
}

func (suite *LoanServiceTestSuite) TestRecordInstallmentPayment_Sequencing() {
	ctx := context.Background()
	loan := suite.disbursedLoan("6000000", 6, "1.5")

	_, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 2, accountant)
	suite.ErrorIs(err, apperrors.ErrOutOfSequence)

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 1, accountant)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 1, accountant)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 3, accountant)
	suite.ErrorIs(err, apperrors.ErrOutOfSequence)

	payments, err := suite.f.svc.Loan.ListPayments(ctx, loan.LoanID)
	suite.Require().NoError(err)
	suite.Len(payments, 1)
}

func (suite *LoanServiceTestSuite) TestRecordInstallmentPayment_RequiresApprovedLoan() {
	ctx := context.Background()
	applied, err := suite.f.svc.Loan.ApplyForLoan(ctx, domain.Loan{MemberID: suite.memberID, Amount: dec("100000"), TenorMonths: 2, InterestRate: dec("1")}, member)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, applied.Loan.LoanID, 1, accountant)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Loan.RecordInstallmentPayment(ctx, 987654, 1, accountant)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestCancelInstallmentPayment_RoundTrip() {
	ctx := context.Background()
	loan := suite.disbursedLoan("3000000", 3, "2")

	var outcomes []*domain.PaymentOutcome
	for n := 1; n <= 3; n++ {
		o, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, n, accountant)
		suite.Require().NoError(err)
		outcomes = append(outcomes, o)
	}
	suite.Equal(domain.LoanPaidOff, outcomes[2].Loan.Status)
	cashAfterPayoff := suite.f.balanceOf(suite.T(), suite.f.names.Cash)

	_, err := suite.f.svc.Loan.CancelInstallmentPayment(ctx, outcomes[1].Payment.PaymentID, accountant)
	suite.ErrorIs(err, apperrors.ErrOutOfSequence, "only the latest installment can be cancelled")

	cancelled, err := suite.f.svc.Loan.CancelInstallmentPayment(ctx, outcomes[2].Payment.PaymentID, accountant)
	suite.Require().NoError(err)
	suite.Equal(domain.LoanApproved, cancelled.Loan.Status)
	suite.True(cancelled.Loan.RemainingPrincipal.Equal(outcomes[1].Loan.RemainingPrincipal))

	_, err = suite.f.svc.Journal.GetJournalByID(ctx, *outcomes[2].Payment.JournalID)
	suite.ErrorIs(err, apperrors.ErrNotFound, "the payment journal is removed")
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.Cash).Equal(cashAfterPayoff.Sub(outcomes[2].Payment.AmountPaid)))

	// Paying the installment again reproduces the original state.
	again, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 3, accountant)
	suite.Require().NoError(err)
	suite.Equal(domain.LoanPaidOff, again.Loan.Status)
	suite.True(again.Loan.RemainingPrincipal.Equal(outcomes[2].Loan.RemainingPrincipal))
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.Cash).Equal(cashAfterPayoff))
	suite.f.requireBalancedLedger(suite.T())
}

func (suite *LoanServiceTestSuite) TestCancelInstallmentPayment_RefusedInClosedMonth() {
	ctx := context.Background()
	loan := suite.disbursedLoan("1000000", 2, "1")
	paid, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 1, accountant)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Closing.CloseMonth(ctx, 2024, 1, manager)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Loan.CancelInstallmentPayment(ctx, paid.Payment.PaymentID, accountant)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)

	current, err := suite.f.svc.Loan.GetLoan(ctx, loan.LoanID)
	suite.Require().NoError(err)
	suite.True(current.RemainingPrincipal.Equal(paid.Loan.RemainingPrincipal), "a refused cancel changes nothing")
}

func (suite *LoanServiceTestSuite) TestSubmitApproveRejectPayment() {
	ctx := context.Background()
	loan := suite.disbursedLoan("2000000", 4, "1")

	submitted, err := suite.f.svc.Loan.SubmitInstallmentPayment(ctx, loan.LoanID, 1, member)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, submitted.Payment.Status)
	suite.Nil(submitted.Payment.JournalID)
	suite.True(submitted.Payment.AmountPaid.Equal(dec("520000")))

	_, err = suite.f.svc.Loan.SubmitInstallmentPayment(ctx, loan.LoanID, 1, member)
	suite.ErrorIs(err, apperrors.ErrOutOfSequence, "a pending claim occupies the installment")

	rejected, err := suite.f.svc.Loan.RejectPayment(ctx, submitted.Payment.PaymentID, accountant)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, rejected.Payment.Status)

	resubmitted, err := suite.f.svc.Loan.SubmitInstallmentPayment(ctx, loan.LoanID, 1, member)
	suite.Require().NoError(err)
	approved, err := suite.f.svc.Loan.ApprovePayment(ctx, resubmitted.Payment.PaymentID, accountant)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentApproved, approved.Payment.Status)
	suite.NotNil(approved.Payment.JournalID)
	suite.True(approved.Loan.RemainingPrincipal.Equal(dec("1500000")))

	_, err = suite.f.svc.Loan.ApprovePayment(ctx, resubmitted.Payment.PaymentID, accountant)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	_, err = suite.f.svc.Loan.RejectPayment(ctx, resubmitted.Payment.PaymentID, accountant)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.f.requireBalancedLedger(suite.T())
}

func (suite *LoanServiceTestSuite) TestPaymentOperationsRequireAccountingRole() {
	ctx := context.Background()
	loan := suite.disbursedLoan("2000000", 4, "1")

	for _, actor := range []domain.Actor{member, manager} {
		_, err := suite.f.svc.Loan.RecordInstallmentPayment(ctx, loan.LoanID, 1, actor)
		suite.ErrorIs(err, apperrors.ErrForbidden, "record as %s", actor.Role)
	}

	submitted, err := suite.f.svc.Loan.SubmitInstallmentPayment(ctx, loan.LoanID, 1, member)
	suite.Require().NoError(err)
	paymentID := submitted.Payment.PaymentID

	_, err = suite.f.svc.Loan.ApprovePayment(ctx, paymentID, member)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	_, err = suite.f.svc.Loan.RejectPayment(ctx, paymentID, manager)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	approved, err := suite.f.svc.Loan.ApprovePayment(ctx, paymentID, admin)
	suite.Require().NoError(err)
	_, err = suite.f.svc.Loan.CancelInstallmentPayment(ctx, paymentID, member)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	current, err := suite.f.svc.Loan.GetLoan(ctx, loan.LoanID)
	suite.Require().NoError(err)
	suite.True(current.RemainingPrincipal.Equal(approved.Loan.RemainingPrincipal), "a refused cancel changes nothing")
}

func (suite *LoanServiceTestSuite) TestReceivableFromLoanType() {
	ctx := context.Background()
	special := suite.f.store.AddAccount(domain.Account{AccountNumber: "1-050", Name: "Piutang Pinjaman Khusus", AccountType: domain.Asset})
	loanID := suite.f.store.AddLoan(domain.Loan{
		MemberID:            suite.memberID,
		ReceivableAccountID: &special,
		Amount:              dec("500000"),
		TenorMonths:         5,
		InterestRate:        dec("1"),
		Status:              domain.LoanApprovedByAccounting,
	})

	_, err := suite.f.svc.Loan.ApproveLoan(ctx, loanID, domain.LoanApproved, manager)
	suite.Require().NoError(err)
	suite.True(suite.f.balanceOf(suite.T(), "Piutang Pinjaman Khusus").Equal(dec("500000")))
	suite.True(suite.f.balanceOf(suite.T(), suite.f.names.LoanReceivable).IsZero())

	schedule, err := suite.f.svc.Loan.Schedule(ctx, loanID)
	suite.Require().NoError(err)
	suite.Len(schedule, 5)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
