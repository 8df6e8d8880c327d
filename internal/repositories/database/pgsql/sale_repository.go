package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	db DBTX
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ProductID, &p.Name, &p.Stock, &p.Price, &p.Cost)
	return p, err
}

// FindProductsForUpdate locks rows in ID order so concurrent sales cannot deadlock.
func (r *PgxProductRepository) FindProductsForUpdate(ctx context.Context, productIDs []int64) (map[int64]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, stock, price, cost
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE;
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	found := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		found[p.ProductID] = p
	}
	return found, nil
}

// AdjustStock never lets stock go negative; the guard mirrors the table's CHECK constraint.
func (r *PgxProductRepository) AdjustStock(ctx context.Context, productID int64, delta int) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE products SET stock = stock + $2 WHERE id = $1 AND stock + $2 >= 0`, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock of product %d: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d cannot absorb a stock change of %d", apperrors.ErrInsufficientBalance, productID, delta)
	}
	return nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, stock, price, cost FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
}

type PgxSaleRepository struct {
	db DBTX
}

var _ portsrepo.SaleRepository = (*PgxSaleRepository)(nil)

func (r *PgxSaleRepository) InsertSale(ctx context.Context, sale domain.Sale) (int64, error) {
	query := `
		INSERT INTO sales (order_number, member_id, sale_date, total_amount, total_cost, journal_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, sale.OrderNumber, sale.MemberID, sale.SaleDate, sale.TotalAmount,
		sale.TotalCost, sale.JournalID, sale.CreatedAt, sale.CreatedBy).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: order number %s", apperrors.ErrDuplicate, sale.OrderNumber)
		}
		return 0, fmt.Errorf("failed to insert sale %s: %w", sale.OrderNumber, err)
	}
	return id, nil
}

func (r *PgxSaleRepository) InsertSaleItems(ctx context.Context, saleID int64, items []domain.SaleItem) error {
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{saleID, it.ProductID, it.Quantity, it.Price, it.Cost}
	}
	query, args, err := multiRowInsert("sale_items", []string{"sale_id", "product_id", "quantity", "price", "cost"}, rows)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert items of sale %d: %w", saleID, err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID int64) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.QueryRow(ctx, `
		SELECT id, order_number, member_id, sale_date, total_amount, total_cost, journal_id, created_at, created_by
		FROM sales
		WHERE id = $1;
	`, saleID).Scan(&s.SaleID, &s.OrderNumber, &s.MemberID, &s.SaleDate, &s.TotalAmount, &s.TotalCost,
		&s.JournalID, &s.CreatedAt, &s.CreatedBy)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("sale %d", saleID))
	}

	rows, err := r.db.Query(ctx, `SELECT product_id, quantity, price, cost FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of sale %d: %w", saleID, err)
	}
	s.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SaleItem, error) {
		var it domain.SaleItem
		err := row.Scan(&it.ProductID, &it.Quantity, &it.Price, &it.Cost)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items of sale %d: %w", saleID, err)
	}
	return &s, nil
}
