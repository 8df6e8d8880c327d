package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceiptItem is one product line received from a supplier.
type GoodsReceiptItem struct {
	ProductID int64           `json:"productID"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// Subtotal is unit cost times quantity.
func (i GoodsReceiptItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GoodsReceipt records goods bought on credit; it creates a payable.
type GoodsReceipt struct {
	ReceiptID       int64              `json:"receiptID"`
	SupplierID      int64              `json:"supplierID"`
	ReceiptDate     time.Time          `json:"receiptDate"`
	Items           []GoodsReceiptItem `json:"items"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	ReferenceNumber string             `json:"referenceNumber"`
	JournalID       *int64             `json:"journalID,omitempty"`
	AuditFields
}

// PayableStatus is the settlement state of a payable.
type PayableStatus string

const (
	PayableUnpaid  PayableStatus = "Belum Lunas"
	PayablePartial PayableStatus = "Sebagian"
	PayablePaid    PayableStatus = "Lunas"
)

// Payable is an amount owed to a supplier.
type Payable struct {
	PayableID  int64           `json:"payableID"`
	SupplierID int64           `json:"supplierID"`
	ReceiptID  int64           `json:"receiptID"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Status     PayableStatus   `json:"status"`
}

// Outstanding is what is still owed.
func (p Payable) Outstanding() decimal.Decimal {
	return p.Amount.Sub(p.PaidAmount)
}

// PayablePayment is one settlement of a payable.
type PayablePayment struct {
	PaymentID   int64           `json:"paymentID"`
	PayableID   int64           `json:"payableID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	JournalID   int64           `json:"journalID"`
}
