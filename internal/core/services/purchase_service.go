package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// purchaseService receives goods on credit and settles supplier payables.
type purchaseService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	purchaseRepo portsrepo.PurchaseRepository
	engine       portssvc.JournalEngine
	directory    portssvc.AccountDirectory
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(uow portsrepo.UnitOfWork, purchaseRepo portsrepo.PurchaseRepository, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		BaseService:  newBaseService(options...),
		uow:          uow,
		purchaseRepo: purchaseRepo,
		engine:       engine,
		directory:    directory,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// ReceiveGoods adds stock, posts Dr Persediaan / Cr Hutang Usaha under a LOG reference
// and opens a payable for the supplier.
func (s *purchaseService) ReceiveGoods(ctx context.Context, receipt domain.GoodsReceipt, actor domain.Actor) (*domain.ReceiptOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	if len(receipt.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one item is required")
	}
	receipt.TotalAmount = decimal.Zero
	productIDs := make([]int64, 0, len(receipt.Items))
	for _, it := range receipt.Items {
		if it.Quantity <= 0 || !it.UnitCost.IsPositive() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("product %d needs a positive quantity and unit cost", it.ProductID))
		}
		receipt.TotalAmount = receipt.TotalAmount.Add(it.Subtotal())
		productIDs = append(productIDs, it.ProductID)
	}
	if receipt.ReceiptDate.IsZero() {
		receipt.ReceiptDate = s.now()
	}

	var payable domain.Payable
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		products, err := repos.Products().FindProductsForUpdate(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}
		for _, it := range receipt.Items {
			if _, ok := products[it.ProductID]; !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("product %d not found", it.ProductID))
			}
			if err := repos.Products().AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
				return fmt.Errorf("failed to adjust stock of product %d: %w", it.ProductID, err)
			}
		}

		names := s.directory.Names()
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), names.Inventory, names.AccountsPayable)
		if err != nil {
			return err
		}

		journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
			Date:        receipt.ReceiptDate,
			Description: fmt.Sprintf("Penerimaan barang dari pemasok #%d", receipt.SupplierID),
			Lines: []domain.JournalLine{
				domain.DebitLine(ids[names.Inventory], receipt.TotalAmount),
				domain.CreditLine(ids[names.AccountsPayable], receipt.TotalAmount),
			},
			ReferencePrefix: domain.GoodsReceiptRefPrefix,
			CreatedBy:       actor.UserID,
		})
		if err != nil {
			return err
		}
		journal, err := repos.Journals().FindJournalByID(ctx, journalID)
		if err != nil {
			return fmt.Errorf("failed to read back journal %d: %w", journalID, err)
		}

		receipt.JournalID = &journalID
		receipt.ReferenceNumber = journal.ReferenceNumber
		receipt.AuditFields = domain.AuditFields{CreatedAt: s.now(), CreatedBy: actor.UserID}
		receipt.ReceiptID, err = repos.Purchases().InsertGoodsReceipt(ctx, receipt)
		if err != nil {
			return fmt.Errorf("failed to insert goods receipt: %w", err)
		}
		if err := repos.Purchases().InsertGoodsReceiptItems(ctx, receipt.ReceiptID, receipt.Items); err != nil {
			return fmt.Errorf("failed to insert items of receipt %d: %w", receipt.ReceiptID, err)
		}

		payable = domain.Payable{
			SupplierID: receipt.SupplierID,
			ReceiptID:  receipt.ReceiptID,
			Amount:     receipt.TotalAmount,
			PaidAmount: decimal.Zero,
			Status:     domain.PayableUnpaid,
		}
		payable.PayableID, err = repos.Purchases().InsertPayable(ctx, payable)
		if err != nil {
			return fmt.Errorf("failed to insert payable: %w", err)
		}
		return nil
	})
	if err != nil {
		if isRuleViolation(err) {
			s.LogInfo(ctx, "Goods receipt rejected", slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to receive goods", slog.Int64("supplier_id", receipt.SupplierID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Goods received", slog.Int64("receipt_id", receipt.ReceiptID), slog.String("reference_number", receipt.ReferenceNumber))
	return &domain.ReceiptOutcome{
		Receipt: receipt,
		Payable: payable,
		Effects: []domain.Effect{{
			Recipient: domain.RoleRecipient(domain.RoleAccounting),
			Subject:   "Hutang usaha baru",
			Message:   fmt.Sprintf("Penerimaan barang %s menimbulkan hutang %s.", receipt.ReferenceNumber, utils.FormatRupiah(receipt.TotalAmount)),
		}},
	}, nil
}

// PayPayable settles part or all of a payable: Dr Hutang Usaha / Cr Kas.
func (s *purchaseService) PayPayable(ctx context.Context, payableID int64, amount decimal.Decimal, actor domain.Actor) (*domain.PayableOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be greater than zero")
	}

	var outcome domain.PayableOutcome
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		payable, err := repos.Purchases().FindPayableForUpdate(ctx, payableID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(payable.Outstanding()) {
			return fmt.Errorf("%w: payable %d has %s outstanding, payment is %s",
				apperrors.ErrInsufficientBalance, payableID, payable.Outstanding().String(), amount.String())
		}

		names := s.directory.Names()
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), names.AccountsPayable, names.Cash)
		if err != nil {
			return err
		}

		now := s.now()
		journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
			Date:        now,
			Description: fmt.Sprintf("Pembayaran hutang #%d ke pemasok #%d", payableID, payable.SupplierID),
			Lines: []domain.JournalLine{
				domain.DebitLine(ids[names.AccountsPayable], amount),
				domain.CreditLine(ids[names.Cash], amount),
			},
			CreatedBy: actor.UserID,
		})
		if err != nil {
			return err
		}

		payable.PaidAmount = payable.PaidAmount.Add(amount)
		if payable.Outstanding().IsZero() {
			payable.Status = domain.PayablePaid
		} else {
			payable.Status = domain.PayablePartial
		}
		if err := repos.Purchases().UpdatePayable(ctx, *payable); err != nil {
			return fmt.Errorf("failed to update payable %d: %w", payableID, err)
		}

		payment := domain.PayablePayment{PayableID: payableID, Amount: amount, PaymentDate: now, JournalID: journalID}
		payment.PaymentID, err = repos.Purchases().InsertPayablePayment(ctx, payment)
		if err != nil {
			return fmt.Errorf("failed to insert payable payment: %w", err)
		}

		outcome = domain.PayableOutcome{Payable: *payable, Payment: payment}
		return nil
	})
	if err != nil {
		if isRuleViolation(err) {
			s.LogInfo(ctx, "Payable payment rejected", slog.Int64("payable_id", payableID), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to pay payable", slog.Int64("payable_id", payableID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payable paid", slog.Int64("payable_id", payableID), slog.String("status", string(outcome.Payable.Status)))
	return &outcome, nil
}

func (s *purchaseService) GetPayable(ctx context.Context, payableID int64) (*domain.Payable, error) {
	return s.purchaseRepo.FindPayableByID(ctx, payableID)
}

func (s *purchaseService) ListOpenPayables(ctx context.Context) ([]domain.Payable, error) {
	payables, err := s.purchaseRepo.ListOpenPayables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	return payables, nil
}
