package services_test

import (
	"context"
	"testing"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSHUYear gives member 1 twice the savings of member 2 and member 2 all the purchases.
func seedSHUYear(t *testing.T, f *ledgerFixture) {
	t.Helper()
	ctx := context.Background()
	f.store.AddSaving(domain.Saving{MemberID: 1, SavingType: "Simpanan Wajib", Kind: domain.SavingDeposit, Amount: dec("2000000"), Date: date(2023, 3, 1), Status: domain.SavingApproved})
	f.store.AddSaving(domain.Saving{MemberID: 2, SavingType: "Simpanan Wajib", Kind: domain.SavingDeposit, Amount: dec("1000000"), Date: date(2023, 3, 1), Status: domain.SavingApproved})
	f.store.AddSaving(domain.Saving{MemberID: 3, SavingType: "Simpanan Wajib", Kind: domain.SavingDeposit, Amount: dec("9000000"), Date: date(2023, 3, 1), Status: domain.SavingPending})

	product := f.store.AddProduct(domain.Product{Name: "Beras 5kg", Stock: 10, Price: dec("75000"), Cost: dec("60000")})
	buyer := int64(2)
	_, err := f.svc.Sale.CreateCashSale(ctx, &buyer, []domain.SaleItem{{ProductID: product, Quantity: 2}}, accountant)
	require.NoError(t, err)
}

func TestDistributeSHU(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2023, 12, 28))
	seedSHUYear(t, f)

	rules := domain.SHURules{Year: 2023, TotalSHU: dec("1000000"), CapitalPercent: dec("30"), BusinessPercent: dec("25")}

	preview, err := f.svc.SHU.PreviewSHU(ctx, rules)
	require.NoError(t, err)
	require.Len(t, preview, 2)

	out, err := f.svc.SHU.DistributeSHU(ctx, rules, manager)
	require.NoError(t, err)
	require.Equal(t, preview, out.Distribution.Allocations)

	byMember := map[int64]domain.SHUAllocation{}
	for _, a := range out.Distribution.Allocations {
		byMember[a.MemberID] = a
	}
	assert.True(t, byMember[1].CapitalShare.Equal(dec("200000")), "got %s", byMember[1].CapitalShare)
	assert.True(t, byMember[1].BusinessShare.IsZero())
	assert.True(t, byMember[2].CapitalShare.Equal(dec("100000")))
	assert.True(t, byMember[2].BusinessShare.Equal(dec("250000")))
	assert.True(t, out.Distribution.Distributed.Equal(dec("550000")))
	assert.Len(t, out.Effects, 2)

	assert.True(t, f.balanceOf(t, f.names.SHUPayable).Equal(dec("550000")))
	assert.True(t, f.balanceOf(t, f.names.SHUCurrentYear).Equal(dec("-550000")))

	stored, err := f.svc.SHU.GetDistribution(ctx, 2023)
	require.NoError(t, err)
	assert.Len(t, stored.Allocations, 2)

	_, err = f.svc.SHU.DistributeSHU(ctx, rules, manager)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	f.requireBalancedLedger(t)
}

func TestDistributeSHU_Validation(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2023, 12, 28))

	tests := []struct {
		name  string
		rules domain.SHURules
	}{
		{"percentages above 100", domain.SHURules{Year: 2023, TotalSHU: dec("100"), CapitalPercent: dec("60"), BusinessPercent: dec("41")}},
		{"negative percentage", domain.SHURules{Year: 2023, TotalSHU: dec("100"), CapitalPercent: dec("-1"), BusinessPercent: dec("10")}},
		{"zero total", domain.SHURules{Year: 2023, TotalSHU: dec("0"), CapitalPercent: dec("30"), BusinessPercent: dec("20")}},
		{"no contributions", domain.SHURules{Year: 2023, TotalSHU: dec("100"), CapitalPercent: dec("30"), BusinessPercent: dec("20")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SHU.DistributeSHU(ctx, tt.rules, manager)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	_, err := f.svc.SHU.GetDistribution(ctx, 2023)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
