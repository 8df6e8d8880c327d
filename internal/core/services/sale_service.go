package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// saleService sells goods from stock for cash.
type saleService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	reader    portsrepo.TxRepositories
	engine    portssvc.JournalEngine
	directory portssvc.AccountDirectory
}

// NewSaleService creates a new sale service.
func NewSaleService(uow portsrepo.UnitOfWork, reader portsrepo.TxRepositories, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService: newBaseService(options...),
		uow:         uow,
		reader:      reader,
		engine:      engine,
		directory:   directory,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateCashSale decrements stock and posts Dr Kas / Cr Pendapatan Penjualan for the price
// and Dr HPP / Cr Persediaan for the cost, together with the sale record.
// Members check out at the shop themselves, so every known role may record a sale.
func (s *saleService) CreateCashSale(ctx context.Context, memberID *int64, items []domain.SaleItem, actor domain.Actor) (*domain.SaleOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager, domain.RoleMember); err != nil {
		return nil, err
	}
	quantities, productIDs, err := aggregateQuantities(items)
	if err != nil {
		return nil, err
	}

	var sale domain.Sale
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		products, err := repos.Products().FindProductsForUpdate(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}
		for _, id := range productIDs {
			p, ok := products[id]
			if !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("product %d not found", id))
			}
			if p.Stock < quantities[id] {
				return fmt.Errorf("%w: %s has %d in stock, %d requested", apperrors.ErrInsufficientBalance, p.Name, p.Stock, quantities[id])
			}
		}

		now := s.now()
		sale = domain.Sale{
			OrderNumber: newOrderNumber(now),
			MemberID:    memberID,
			SaleDate:    now,
			Items:       make([]domain.SaleItem, len(items)),
			TotalAmount: decimal.Zero,
			TotalCost:   decimal.Zero,
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor.UserID},
		}
		for i, it := range items {
			p := products[it.ProductID]
			it.Price, it.Cost = p.Price, p.Cost
			sale.Items[i] = it
			sale.TotalAmount = sale.TotalAmount.Add(it.Subtotal())
			sale.TotalCost = sale.TotalCost.Add(it.CostTotal())
		}
		if !sale.TotalAmount.IsPositive() {
			return apperrors.NewValidationError("sale total must be greater than zero")
		}

		for _, id := range productIDs {
			if err := repos.Products().AdjustStock(ctx, id, -quantities[id]); err != nil {
				return fmt.Errorf("failed to adjust stock of product %d: %w", id, err)
			}
		}

		names := s.directory.Names()
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), names.Cash, names.SalesRevenue, names.CostOfGoodsSold, names.Inventory)
		if err != nil {
			return err
		}
		lines := []domain.JournalLine{
			domain.DebitLine(ids[names.Cash], sale.TotalAmount),
			domain.CreditLine(ids[names.SalesRevenue], sale.TotalAmount),
		}
		if sale.TotalCost.IsPositive() {
			lines = append(lines,
				domain.DebitLine(ids[names.CostOfGoodsSold], sale.TotalCost),
				domain.CreditLine(ids[names.Inventory], sale.TotalCost),
			)
		}

		journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
			Date:        now,
			Description: fmt.Sprintf("Penjualan tunai %s", sale.OrderNumber),
			Lines:       lines,
			CreatedBy:   actor.UserID,
		})
		if err != nil {
			return err
		}
		sale.JournalID = &journalID

		sale.SaleID, err = repos.Sales().InsertSale(ctx, sale)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		if err := repos.Sales().InsertSaleItems(ctx, sale.SaleID, sale.Items); err != nil {
			return fmt.Errorf("failed to insert items of sale %d: %w", sale.SaleID, err)
		}
		return nil
	})
	if err != nil {
		if isRuleViolation(err) {
			s.LogInfo(ctx, "Cash sale rejected", slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to create cash sale")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Cash sale created", slog.Int64("sale_id", sale.SaleID), slog.String("order_number", sale.OrderNumber))
	outcome := &domain.SaleOutcome{Sale: sale}
	if memberID != nil {
		outcome.Effects = []domain.Effect{{
			Recipient: domain.MemberRecipient(*memberID),
			Subject:   "Struk belanja",
			Message:   fmt.Sprintf("Terima kasih. Pesanan %s sebesar %s.", sale.OrderNumber, utils.FormatRupiah(sale.TotalAmount)),
		}}
	}
	return outcome, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID int64) (*domain.Sale, error) {
	return s.reader.Sales().FindSaleByID(ctx, saleID)
}

func (s *saleService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.reader.Products().ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// aggregateQuantities validates items and sums quantities per product, keeping first-seen order.
func aggregateQuantities(items []domain.SaleItem) (map[int64]int, []int64, error) {
	if len(items) == 0 {
		return nil, nil, apperrors.NewValidationError("at least one item is required")
	}
	quantities := make(map[int64]int, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("quantity of product %d must be positive", it.ProductID))
		}
		if _, ok := quantities[it.ProductID]; !ok {
			ids = append(ids, it.ProductID)
		}
		quantities[it.ProductID] += it.Quantity
	}
	return quantities, ids, nil
}

// newOrderNumber renders POS-YYYYMMDD-XXXXXXXX with a random suffix.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("POS-%s-%s", now.Format("20060102"), suffix)
}
