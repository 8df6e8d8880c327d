package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitSaving(t *testing.T, f *ledgerFixture, kind domain.SavingKind, amount string) int64 {
	t.Helper()
	out, err := f.svc.Saving.SubmitSaving(context.Background(), domain.Saving{
		MemberID:   7,
		SavingType: "Simpanan Sukarela",
		Kind:       kind,
		Amount:     dec(amount),
	}, member)
	require.NoError(t, err)
	assert.Equal(t, domain.SavingPending, out.Saving.Status)
	return out.Saving.SavingID
}

func TestApproveSaving_DepositAndWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))

	deposit := submitSaving(t, f, domain.SavingDeposit, "500000")
	approved, err := f.svc.Saving.ApproveSaving(ctx, deposit, accountant)
	require.NoError(t, err)
	assert.Equal(t, domain.SavingApproved, approved.Saving.Status)
	require.NotNil(t, approved.Saving.JournalID)
	assert.Equal(t, domain.MemberRecipient(7), approved.Effects[0].Recipient)

	assert.True(t, f.balanceOf(t, "Simpanan Sukarela").Equal(dec("500000")))
	assert.True(t, f.balanceOf(t, f.names.Cash).Equal(dec("500000")))

	withdrawal := submitSaving(t, f, domain.SavingWithdrawal, "200000")
	_, err = f.svc.Saving.ApproveSaving(ctx, withdrawal, accountant)
	require.NoError(t, err)

	balance, err := f.svc.Saving.Balance(ctx, 7, "Simpanan Sukarela")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("300000")))
	assert.True(t, f.balanceOf(t, "Simpanan Sukarela").Equal(dec("300000")))
	f.requireBalancedLedger(t)
}

func TestApproveSaving_WithdrawalBeyondBalance(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 5, 2))

	deposit := submitSaving(t, f, domain.SavingDeposit, "100000")
	_, err := f.svc.Saving.ApproveSaving(ctx, deposit, accountant)
	require.NoError(t, err)

	// A pending deposit does not count towards the balance.
	submitSaving(t, f, domain.SavingDeposit, "900000")

	withdrawal := submitSaving(t, f, domain.SavingWithdrawal, "100000.01")
	_, err = f.svc.Saving.ApproveSaving(ctx, withdrawal, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	stored, err := f.svc.Saving.GetSaving(ctx, withdrawal)
	require.NoError(t, err)
	assert.Equal(t, domain.SavingPending, stored.Status, "a refused approval leaves the saving pending")
}

func TestSaving_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 5, 2))

	id := submitSaving(t, f, domain.SavingDeposit, "50000")
	rejected, err := f.svc.Saving.RejectSaving(ctx, id, accountant)
	require.NoError(t, err)
	assert.Equal(t, domain.SavingRejected, rejected.Saving.Status)

	_, err = f.svc.Saving.ApproveSaving(ctx, id, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	_, err = f.svc.Saving.RejectSaving(ctx, id, accountant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.Saving.ApproveSaving(ctx, 123456, accountant)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	savings, err := f.svc.Saving.ListMemberSavings(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, savings, 1)
}

func TestSubmitSaving_Validation(t *testing.T) {
	f := newLedgerFixture(t, date(2024, 5, 2))
	tests := []struct {
		name   string
		saving domain.Saving
	}{
		{"missing type", domain.Saving{MemberID: 1, Kind: domain.SavingDeposit, Amount: dec("1")}},
		{"unknown kind", domain.Saving{MemberID: 1, SavingType: "Simpanan Wajib", Kind: "Transfer", Amount: dec("1")}},
		{"zero amount", domain.Saving{MemberID: 1, SavingType: "Simpanan Wajib", Kind: domain.SavingDeposit, Amount: dec("0")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Saving.SubmitSaving(context.Background(), tt.saving, member)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestApproveSaving_UnknownSavingTypeIsConfigurationError(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 5, 2))
	out, err := f.svc.Saving.SubmitSaving(ctx, domain.Saving{MemberID: 7, SavingType: "Simpanan Hari Raya", Kind: domain.SavingDeposit, Amount: dec("10000")}, member)
	require.NoError(t, err)

	_, err = f.svc.Saving.ApproveSaving(ctx, out.Saving.SavingID, accountant)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestPrivilegedOperationsRequireBackOfficeRole(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 5, 2))
	id := submitSaving(t, f, domain.SavingDeposit, "50000")

	_, err := f.svc.Saving.ApproveSaving(ctx, id, member)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.svc.Closing.CloseMonth(ctx, 2024, 4, member)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.svc.SHU.DistributeSHU(ctx, domain.SHURules{Year: 2023, TotalSHU: dec("100"), CapitalPercent: dec("50"), BusinessPercent: dec("50")}, accountant)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.svc.Purchase.PayPayable(ctx, 1, dec("10"), manager)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	stored, err := f.svc.Saving.GetSaving(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SavingPending, stored.Status)
}

func TestApproveSaving_WithdrawalLocksMemberSavingsBeforeBalance(t *testing.T) {
	ctx := context.Background()
	f, calls := newRecordingFixture(t, date(2024, 5, 2))
	deposit := submitSaving(t, f, domain.SavingDeposit, "500000")
	_, err := f.svc.Saving.ApproveSaving(ctx, deposit, accountant)
	require.NoError(t, err)
	assert.Equal(t, -1, calls.indexOf("LockMemberSavings 7 Simpanan Sukarela"), "deposits take no balance lock")

	withdrawal := submitSaving(t, f, domain.SavingWithdrawal, "200000")
	_, err = f.svc.Saving.ApproveSaving(ctx, withdrawal, accountant)
	require.NoError(t, err)

	lock := calls.indexOf("LockMemberSavings 7 Simpanan Sukarela")
	require.NotEqual(t, -1, lock)
	assert.Less(t, lock, calls.indexOf("ApprovedBalance 7 Simpanan Sukarela"))
}

func TestApproveSaving_ConcurrentWithdrawalsCannotOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 5, 2))
	deposit := submitSaving(t, f, domain.SavingDeposit, "500000")
	_, err := f.svc.Saving.ApproveSaving(ctx, deposit, accountant)
	require.NoError(t, err)

	withdrawals := []int64{
		submitSaving(t, f, domain.SavingWithdrawal, "300000"),
		submitSaving(t, f, domain.SavingWithdrawal, "300000"),
	}
	errs := make([]error, len(withdrawals))
	var wg sync.WaitGroup
	for i, id := range withdrawals {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Saving.ApproveSaving(ctx, id, accountant)
		}()
	}
	wg.Wait()

	approved := 0
	for _, err := range errs {
		if err == nil {
			approved++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	}
	assert.Equal(t, 1, approved)

	balance, err := f.svc.Saving.Balance(ctx, 7, "Simpanan Sukarela")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("200000")), "balance %s", balance)
}
