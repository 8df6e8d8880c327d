package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// PurchaseRepository persists goods receipts and supplier payables.
type PurchaseRepository interface {
	InsertGoodsReceipt(ctx context.Context, receipt domain.GoodsReceipt) (int64, error)
	InsertGoodsReceiptItems(ctx context.Context, receiptID int64, items []domain.GoodsReceiptItem) error

	InsertPayable(ctx context.Context, payable domain.Payable) (int64, error)
	FindPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error)
	FindPayableForUpdate(ctx context.Context, payableID int64) (*domain.Payable, error)
	UpdatePayable(ctx context.Context, payable domain.Payable) error
	ListOpenPayables(ctx context.Context) ([]domain.Payable, error)

	InsertPayablePayment(ctx context.Context, payment domain.PayablePayment) (int64, error)
}
