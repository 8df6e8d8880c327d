package dto

import (
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// SaleItemRequest is one product line of a cash sale.
type SaleItemRequest struct {
	ProductID int64 `json:"productID" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest defines a point-of-sale cash order.
type CreateSaleRequest struct {
	MemberID *int64            `json:"memberID"` // Optional, walk-in customers have none
	Items    []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToSaleItems converts to domain items; prices and costs are filled from the catalog.
func (r CreateSaleRequest) ToSaleItems() []domain.SaleItem {
	items := make([]domain.SaleItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.SaleItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return items
}
