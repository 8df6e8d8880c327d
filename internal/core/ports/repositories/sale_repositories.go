package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// ProductRepository covers the stock side of the product catalog.
type ProductRepository interface {
	// FindProductsForUpdate retrieves and row-locks products. Unknown IDs are absent from the map.
	FindProductsForUpdate(ctx context.Context, productIDs []int64) (map[int64]domain.Product, error)

	// AdjustStock adds delta (possibly negative) to a product's stock.
	AdjustStock(ctx context.Context, productID int64, delta int) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// SaleRepository persists point-of-sale orders.
type SaleRepository interface {
	InsertSale(ctx context.Context, sale domain.Sale) (int64, error)
	InsertSaleItems(ctx context.Context, saleID int64, items []domain.SaleItem) error
	FindSaleByID(ctx context.Context, saleID int64) (*domain.Sale, error)
}
