package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^POS-20240702-[0-9A-F]{8}$`)

func TestCreateCashSale_PostsRevenueAndCost(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, time.Date(2024, 7, 2, 11, 0, 0, 0, time.UTC))
	rice := f.store.AddProduct(domain.Product{Name: "Beras 5kg", Stock: 10, Price: dec("75000"), Cost: dec("60000")})
	oil := f.store.AddProduct(domain.Product{Name: "Minyak 1L", Stock: 5, Price: dec("18000"), Cost: dec("15000")})
	memberID := int64(7)

	out, err := f.svc.Sale.CreateCashSale(ctx, &memberID, []domain.SaleItem{
		{ProductID: rice, Quantity: 2},
		{ProductID: oil, Quantity: 1},
		{ProductID: rice, Quantity: 1},
	}, accountant)
	require.NoError(t, err)

	assert.True(t, out.Sale.TotalAmount.Equal(dec("243000")))
	assert.True(t, out.Sale.TotalCost.Equal(dec("195000")))
	assert.Regexp(t, orderNumberPattern, out.Sale.OrderNumber)
	require.Len(t, out.Effects, 1)
	assert.Equal(t, domain.MemberRecipient(memberID), out.Effects[0].Recipient)

	products, err := f.svc.Sale.ListProducts(ctx)
	require.NoError(t, err)
	stock := map[int64]int{}
	for _, p := range products {
		stock[p.ProductID] = p.Stock
	}
	assert.Equal(t, 7, stock[rice])
	assert.Equal(t, 4, stock[oil])

	sale, err := f.svc.Sale.GetSale(ctx, out.Sale.SaleID)
	require.NoError(t, err)
	assert.Len(t, sale.Items, 3)

	assert.True(t, f.balanceOf(t, f.names.Cash).Equal(dec("243000")))
	assert.True(t, f.balanceOf(t, f.names.SalesRevenue).Equal(dec("243000")))
	assert.True(t, f.balanceOf(t, f.names.CostOfGoodsSold).Equal(dec("195000")))
	assert.True(t, f.balanceOf(t, f.names.Inventory).Equal(dec("-195000")))
	f.requireBalancedLedger(t)
}

func TestCreateCashSale_Roles(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 7, 2))
	rice := f.store.AddProduct(domain.Product{Name: "Beras 5kg", Stock: 5, Price: dec("75000"), Cost: dec("60000")})
	items := []domain.SaleItem{{ProductID: rice, Quantity: 1}}

	_, err := f.svc.Sale.CreateCashSale(ctx, nil, items, domain.Actor{UserID: "guest-1", Role: "tamu"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.svc.Sale.CreateCashSale(ctx, nil, items, domain.Actor{UserID: "anon"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.True(t, f.balanceOf(t, f.names.Cash).IsZero(), "a refused sale posts nothing")

	for _, actor := range []domain.Actor{member, manager, accountant, admin} {
		_, err := f.svc.Sale.CreateCashSale(ctx, nil, items, actor)
		assert.NoError(t, err, "sale as %s", actor.Role)
	}
	assert.True(t, f.balanceOf(t, f.names.SalesRevenue).Equal(dec("300000")))
}

func TestCreateCashSale_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 7, 2))
	rice := f.store.AddProduct(domain.Product{Name: "Beras 5kg", Stock: 2, Price: dec("75000"), Cost: dec("60000")})
	free := f.store.AddProduct(domain.Product{Name: "Brosur", Stock: 100})

	tests := []struct {
		name  string
		items []domain.SaleItem
		err   error
	}{
		{"no items", nil, apperrors.ErrValidation},
		{"zero quantity", []domain.SaleItem{{ProductID: rice, Quantity: 0}}, apperrors.ErrValidation},
		{"stock exceeded across lines", []domain.SaleItem{{ProductID: rice, Quantity: 2}, {ProductID: rice, Quantity: 1}}, apperrors.ErrInsufficientBalance},
		{"unknown product", []domain.SaleItem{{ProductID: 99999, Quantity: 1}}, apperrors.ErrNotFound},
		{"zero total", []domain.SaleItem{{ProductID: free, Quantity: 1}}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Sale.CreateCashSale(ctx, nil, tt.items, accountant)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	products, err := f.svc.Sale.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, products[0].Stock, "failed sales leave stock untouched")
}

func TestReceiveGoodsAndPayPayable(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, time.Date(2024, 8, 5, 14, 0, 0, 0, time.UTC))
	sugar := f.store.AddProduct(domain.Product{Name: "Gula 1kg", Stock: 3, Price: dec("17000"), Cost: dec("14000")})

	received, err := f.svc.Purchase.ReceiveGoods(ctx, domain.GoodsReceipt{
		SupplierID: 3,
		Items:      []domain.GoodsReceiptItem{{ProductID: sugar, Quantity: 20, UnitCost: dec("14000")}},
	}, accountant)
	require.NoError(t, err)
	assert.Equal(t, "LOG-20240805-0001", received.Receipt.ReferenceNumber)
	assert.True(t, received.Payable.Amount.Equal(dec("280000")))
	assert.Equal(t, domain.PayableUnpaid, received.Payable.Status)

	products, err := f.svc.Sale.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23, products[0].Stock)
	assert.True(t, f.balanceOf(t, f.names.Inventory).Equal(dec("280000")))
	assert.True(t, f.balanceOf(t, f.names.AccountsPayable).Equal(dec("280000")))

	_, err = f.svc.Purchase.PayPayable(ctx, received.Payable.PayableID, dec("280000.01"), accountant)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	partial, err := f.svc.Purchase.PayPayable(ctx, received.Payable.PayableID, dec("80000"), accountant)
	require.NoError(t, err)
	assert.Equal(t, domain.PayablePartial, partial.Payable.Status)
	assert.True(t, partial.Payable.Outstanding().Equal(dec("200000")))

	open, err := f.svc.Purchase.ListOpenPayables(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	full, err := f.svc.Purchase.PayPayable(ctx, received.Payable.PayableID, dec("200000"), accountant)
	require.NoError(t, err)
	assert.Equal(t, domain.PayablePaid, full.Payable.Status)

	open, err = f.svc.Purchase.ListOpenPayables(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
	assert.True(t, f.balanceOf(t, f.names.AccountsPayable).IsZero())
	assert.True(t, f.balanceOf(t, f.names.Cash).Equal(dec("-280000")))
	f.requireBalancedLedger(t)
}

func TestReceiveGoods_Validation(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, date(2024, 8, 5))

	_, err := f.svc.Purchase.ReceiveGoods(ctx, domain.GoodsReceipt{SupplierID: 3}, accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Purchase.ReceiveGoods(ctx, domain.GoodsReceipt{
		SupplierID: 3,
		Items:      []domain.GoodsReceiptItem{{ProductID: 4242, Quantity: 1, UnitCost: dec("10")}},
	}, accountant)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.Purchase.PayPayable(ctx, 4242, dec("10"), accountant)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.svc.Purchase.PayPayable(ctx, 4242, dec("0"), accountant)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
