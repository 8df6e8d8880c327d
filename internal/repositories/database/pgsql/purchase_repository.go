package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxPurchaseRepository struct {
	db DBTX
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

func (r *PgxPurchaseRepository) InsertGoodsReceipt(ctx context.Context, receipt domain.GoodsReceipt) (int64, error) {
	query := `
		INSERT INTO goods_receipts (supplier_id, receipt_date, total_amount, reference_number, journal_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, receipt.SupplierID, receipt.ReceiptDate, receipt.TotalAmount,
		receipt.ReferenceNumber, receipt.JournalID, receipt.CreatedAt, receipt.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert goods receipt %s: %w", receipt.ReferenceNumber, err)
	}
	return id, nil
}

func (r *PgxPurchaseRepository) InsertGoodsReceiptItems(ctx context.Context, receiptID int64, items []domain.GoodsReceiptItem) error {
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{receiptID, it.ProductID, it.Quantity, it.UnitCost}
	}
	query, args, err := multiRowInsert("goods_receipt_items", []string{"receipt_id", "product_id", "quantity", "unit_cost"}, rows)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert items of goods receipt %d: %w", receiptID, err)
	}
	return nil
}

const payableColumns = `id, supplier_id, receipt_id, amount, paid_amount, status`

func scanPayable(row pgx.Row) (domain.Payable, error) {
	var p domain.Payable
	err := row.Scan(&p.PayableID, &p.SupplierID, &p.ReceiptID, &p.Amount, &p.PaidAmount, &p.Status)
	return p, err
}

func (r *PgxPurchaseRepository) InsertPayable(ctx context.Context, payable domain.Payable) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO payables (supplier_id, receipt_id, amount, paid_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`, payable.SupplierID, payable.ReceiptID, payable.Amount, payable.PaidAmount, payable.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payable for receipt %d: %w", payable.ReceiptID, err)
	}
	return id, nil
}

func (r *PgxPurchaseRepository) FindPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error) {
	p, err := scanPayable(r.db.QueryRow(ctx, `SELECT `+payableColumns+` FROM payables WHERE id = $1`, payableID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("payable %d", payableID))
	}
	return &p, nil
}

func (r *PgxPurchaseRepository) FindPayableForUpdate(ctx context.Context, payableID int64) (*domain.Payable, error) {
	p, err := scanPayable(r.db.QueryRow(ctx, `SELECT `+payableColumns+` FROM payables WHERE id = $1 FOR UPDATE`, payableID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("payable %d", payableID))
	}
	return &p, nil
}

func (r *PgxPurchaseRepository) UpdatePayable(ctx context.Context, payable domain.Payable) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE payables SET paid_amount = $2, status = $3 WHERE id = $1`,
		payable.PayableID, payable.PaidAmount, payable.Status)
	if err != nil {
		return fmt.Errorf("failed to update payable %d: %w", payable.PayableID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payable %d not found for update", payable.PayableID))
	}
	return nil
}

func (r *PgxPurchaseRepository) ListOpenPayables(ctx context.Context) ([]domain.Payable, error) {
	rows, err := r.db.Query(ctx, `SELECT `+payableColumns+` FROM payables WHERE status <> $1 ORDER BY id`, string(domain.PayablePaid))
	if err != nil {
		return nil, fmt.Errorf("failed to list open payables: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payable, error) {
		return scanPayable(row)
	})
}

func (r *PgxPurchaseRepository) InsertPayablePayment(ctx context.Context, payment domain.PayablePayment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO payable_payments (payable_id, amount, payment_date, journal_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`, payment.PayableID, payment.Amount, payment.PaymentDate, payment.JournalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment of payable %d: %w", payment.PayableID, err)
	}
	return id, nil
}
