package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseSvcFacade covers goods receipts and supplier payables.
type PurchaseSvcFacade interface {
	ReceiveGoods(ctx context.Context, receipt domain.GoodsReceipt, actor domain.Actor) (*domain.ReceiptOutcome, error)
	PayPayable(ctx context.Context, payableID int64, amount decimal.Decimal, actor domain.Actor) (*domain.PayableOutcome, error)
	GetPayable(ctx context.Context, payableID int64) (*domain.Payable, error)
	ListOpenPayables(ctx context.Context) ([]domain.Payable, error)
}
