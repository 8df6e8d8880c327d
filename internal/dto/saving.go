package dto

import (
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitSavingRequest records a pending deposit or withdrawal.
type SubmitSavingRequest struct {
	MemberID   int64             `json:"memberID" binding:"required,gt=0"`
	SavingType string            `json:"savingType" binding:"required"`
	Kind       domain.SavingKind `json:"kind" binding:"required,oneof=Setoran Penarikan"`
	Amount     decimal.Decimal   `json:"amount" binding:"dgt0"`
	Date       time.Time         `json:"date"` // Optional, defaults to now
}

// ToSaving converts the request to a pending saving.
func (r SubmitSavingRequest) ToSaving() domain.Saving {
	return domain.Saving{
		MemberID:   r.MemberID,
		SavingType: r.SavingType,
		Kind:       r.Kind,
		Amount:     r.Amount,
		Date:       r.Date,
	}
}

// SavingBalanceResponse is a member's approved balance of one saving type.
type SavingBalanceResponse struct {
	MemberID   int64           `json:"memberID"`
	SavingType string          `json:"savingType"`
	Balance    decimal.Decimal `json:"balance"`
}
