package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is catalog reference data; only Stock is mutated by the ledger flows.
type Product struct {
	ProductID int64           `json:"productID"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
}

// SaleItem is one product line of a point-of-sale order.
type SaleItem struct {
	ProductID int64           `json:"productID"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
}

// Subtotal is price times quantity.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CostTotal is cost times quantity.
func (i SaleItem) CostTotal() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is a cash point-of-sale transaction.
type Sale struct {
	SaleID      int64           `json:"saleID"`
	OrderNumber string          `json:"orderNumber"`
	MemberID    *int64          `json:"memberID,omitempty"`
	SaleDate    time.Time       `json:"saleDate"`
	Items       []SaleItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	JournalID   *int64          `json:"journalID,omitempty"`
	AuditFields
}
