package dto

import (
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoodsReceiptItemRequest is one received product line.
type GoodsReceiptItemRequest struct {
	ProductID int64           `json:"productID" binding:"required,gt=0"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"dgt0"`
}

// ReceiveGoodsRequest records goods bought on credit from a supplier.
type ReceiveGoodsRequest struct {
	SupplierID  int64                     `json:"supplierID" binding:"required,gt=0"`
	ReceiptDate time.Time                 `json:"receiptDate"` // Optional, defaults to now
	Items       []GoodsReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToGoodsReceipt converts the request to a domain receipt.
func (r ReceiveGoodsRequest) ToGoodsReceipt() domain.GoodsReceipt {
	items := make([]domain.GoodsReceiptItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.GoodsReceiptItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost}
	}
	return domain.GoodsReceipt{SupplierID: r.SupplierID, ReceiptDate: r.ReceiptDate, Items: items}
}

// PayPayableRequest settles part or all of a payable.
type PayPayableRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
}
