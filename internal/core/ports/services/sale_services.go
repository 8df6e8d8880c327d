package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// SaleSvcFacade covers point-of-sale orders.
type SaleSvcFacade interface {
	// CreateCashSale sells from stock for cash. Prices and costs come from the catalog.
	CreateCashSale(ctx context.Context, memberID *int64, items []domain.SaleItem, actor domain.Actor) (*domain.SaleOutcome, error)
	GetSale(ctx context.Context, saleID int64) (*domain.Sale, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
