package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- products ---

func (v *view) FindProductsForUpdate(_ context.Context, productIDs []int64) (map[int64]domain.Product, error) {
	st, done := v.begin()
	defer done()
	found := make(map[int64]domain.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := st.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (v *view) AdjustStock(_ context.Context, productID int64, delta int) error {
	st, done := v.begin()
	defer done()
	p, ok := st.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, apperrors.ErrNotFound)
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("product %d: %w", productID, apperrors.ErrInsufficientBalance)
	}
	p.Stock += delta
	st.products[productID] = p
	return nil
}

func (v *view) ListProducts(_ context.Context) ([]domain.Product, error) {
	st, done := v.begin()
	defer done()
	products := make([]domain.Product, 0, len(st.products))
	for _, p := range st.products {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b domain.Product) int { return cmp.Compare(a.ProductID, b.ProductID) })
	return products, nil
}

// --- sales ---

func (v *view) InsertSale(_ context.Context, sale domain.Sale) (int64, error) {
	st, done := v.begin()
	defer done()
	sale.SaleID = st.nextID()
	sale.Items = nil
	st.sales[sale.SaleID] = sale
	return sale.SaleID, nil
}

func (v *view) InsertSaleItems(_ context.Context, saleID int64, items []domain.SaleItem) error {
	st, done := v.begin()
	defer done()
	sale, ok := st.sales[saleID]
	if !ok {
		return fmt.Errorf("sale %d: %w", saleID, apperrors.ErrNotFound)
	}
	sale.Items = append(slices.Clone(sale.Items), items...)
	st.sales[saleID] = sale
	return nil
}

func (v *view) FindSaleByID(_ context.Context, saleID int64) (*domain.Sale, error) {
	st, done := v.begin()
	defer done()
	sale, ok := st.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %d: %w", saleID, apperrors.ErrNotFound)
	}
	sale.Items = slices.Clone(sale.Items)
	return &sale, nil
}

// --- purchases ---

func (v *view) InsertGoodsReceipt(_ context.Context, receipt domain.GoodsReceipt) (int64, error) {
	st, done := v.begin()
	defer done()
	receipt.ReceiptID = st.nextID()
	receipt.Items = nil
	st.receipts[receipt.ReceiptID] = receipt
	return receipt.ReceiptID, nil
}

func (v *view) InsertGoodsReceiptItems(_ context.Context, receiptID int64, items []domain.GoodsReceiptItem) error {
	st, done := v.begin()
	defer done()
	receipt, ok := st.receipts[receiptID]
	if !ok {
		return fmt.Errorf("goods receipt %d: %w", receiptID, apperrors.ErrNotFound)
	}
	receipt.Items = append(slices.Clone(receipt.Items), items...)
	st.receipts[receiptID] = receipt
	return nil
}

func (v *view) InsertPayable(_ context.Context, payable domain.Payable) (int64, error) {
	st, done := v.begin()
	defer done()
	payable.PayableID = st.nextID()
	st.payables[payable.PayableID] = payable
	return payable.PayableID, nil
}

func (v *view) FindPayableByID(_ context.Context, payableID int64) (*domain.Payable, error) {
	st, done := v.begin()
	defer done()
	p, ok := st.payables[payableID]
	if !ok {
		return nil, fmt.Errorf("payable %d: %w", payableID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (v *view) FindPayableForUpdate(ctx context.Context, payableID int64) (*domain.Payable, error) {
	return v.FindPayableByID(ctx, payableID)
}

func (v *view) UpdatePayable(_ context.Context, payable domain.Payable) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.payables[payable.PayableID]; !ok {
		return fmt.Errorf("payable %d: %w", payable.PayableID, apperrors.ErrNotFound)
	}
	st.payables[payable.PayableID] = payable
	return nil
}

func (v *view) ListOpenPayables(_ context.Context) ([]domain.Payable, error) {
	st, done := v.begin()
	defer done()
	var open []domain.Payable
	for _, p := range st.payables {
		if p.Status != domain.PayablePaid {
			open = append(open, p)
		}
	}
	slices.SortFunc(open, func(a, b domain.Payable) int { return cmp.Compare(a.PayableID, b.PayableID) })
	return open, nil
}

func (v *view) InsertPayablePayment(_ context.Context, payment domain.PayablePayment) (int64, error) {
	st, done := v.begin()
	defer done()
	payment.PaymentID = st.nextID()
	st.payablePayments[payment.PaymentID] = payment
	return payment.PaymentID, nil
}

// --- SHU ---

func (v *view) FindDistribution(_ context.Context, year int) (*domain.SHUDistribution, error) {
	st, done := v.begin()
	defer done()
	d, ok := st.distributions[year]
	if !ok {
		return nil, fmt.Errorf("SHU distribution %d: %w", year, apperrors.ErrNotFound)
	}
	d.Allocations = slices.Clone(d.Allocations)
	return &d, nil
}

func (v *view) MemberContributions(_ context.Context, from, to time.Time) ([]domain.MemberContribution, error) {
	st, done := v.begin()
	defer done()
	byMember := make(map[int64]*domain.MemberContribution)
	get := func(memberID int64) *domain.MemberContribution {
		c, ok := byMember[memberID]
		if !ok {
			c = &domain.MemberContribution{MemberID: memberID, Savings: decimal.Zero, Purchases: decimal.Zero}
			byMember[memberID] = c
		}
		return c
	}

	for _, s := range st.savings {
		if s.Status != domain.SavingApproved || !s.Date.Before(to) {
			continue
		}
		c := get(s.MemberID)
		if s.Kind == domain.SavingWithdrawal {
			c.Savings = c.Savings.Sub(s.Amount)
		} else {
			c.Savings = c.Savings.Add(s.Amount)
		}
	}
	for _, sale := range st.sales {
		if sale.MemberID == nil || sale.SaleDate.Before(from) || !sale.SaleDate.Before(to) {
			continue
		}
		c := get(*sale.MemberID)
		c.Purchases = c.Purchases.Add(sale.TotalAmount)
	}

	contributions := make([]domain.MemberContribution, 0, len(byMember))
	for _, c := range byMember {
		if c.Savings.IsPositive() || c.Purchases.IsPositive() {
			contributions = append(contributions, *c)
		}
	}
	slices.SortFunc(contributions, func(a, b domain.MemberContribution) int { return cmp.Compare(a.MemberID, b.MemberID) })
	return contributions, nil
}

func (v *view) InsertDistribution(_ context.Context, distribution domain.SHUDistribution) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.distributions[distribution.Year]; ok {
		return fmt.Errorf("SHU distribution %d: %w", distribution.Year, apperrors.ErrDuplicate)
	}
	distribution.Allocations = nil
	st.distributions[distribution.Year] = distribution
	return nil
}

func (v *view) InsertAllocations(_ context.Context, year int, allocations []domain.SHUAllocation) error {
	st, done := v.begin()
	defer done()
	d, ok := st.distributions[year]
	if !ok {
		return fmt.Errorf("SHU distribution %d: %w", year, apperrors.ErrNotFound)
	}
	d.Allocations = append(slices.Clone(d.Allocations), allocations...)
	st.distributions[year] = d
	return nil
}
