package accounting

import (
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestValidateJournalBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr bool
	}{
		{
			name: "balanced two lines",
			lines: []domain.JournalLine{
				domain.DebitLine(1, d("1240000")),
				domain.CreditLine(2, d("1240000")),
			},
		},
		{
			name: "balanced three lines",
			lines: []domain.JournalLine{
				domain.DebitLine(1, d("1240000")),
				domain.CreditLine(2, d("1000000")),
				domain.CreditLine(3, d("240000")),
			},
		},
		{
			name: "difference within tolerance",
			lines: []domain.JournalLine{
				domain.DebitLine(1, d("100.00")),
				domain.CreditLine(2, d("99.995")),
			},
		},
		{
			name: "difference above tolerance",
			lines: []domain.JournalLine{
				domain.DebitLine(1, d("100.00")),
				domain.CreditLine(2, d("99.98")),
			},
			wantErr: true,
		},
		{
			name:    "single line",
			lines:   []domain.JournalLine{domain.DebitLine(1, d("10"))},
			wantErr: true,
		},
		{
			name: "zero total",
			lines: []domain.JournalLine{
				{AccountID: 1, Debit: decimal.Zero, Credit: decimal.Zero},
				{AccountID: 2, Debit: decimal.Zero, Credit: decimal.Zero},
			},
			wantErr: true,
		},
		{
			name: "mixed line",
			lines: []domain.JournalLine{
				{AccountID: 1, Debit: d("10"), Credit: d("10")},
				domain.CreditLine(2, d("0.01")),
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				domain.DebitLine(1, d("-10")),
				domain.CreditLine(2, d("-10")),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJournalBalance(tt.lines)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnbalancedJournal)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	debit := domain.DebitLine(1, d("50"))
	credit := domain.CreditLine(1, d("50"))

	got, err := CalculateSignedAmount(debit, domain.Asset)
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("50")))

	got, err = CalculateSignedAmount(debit, domain.Revenue)
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("-50")))

	got, err = CalculateSignedAmount(credit, domain.Liability)
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("50")))

	_, err = CalculateSignedAmount(credit, domain.AccountType("Income"))
	assert.Error(t, err)
}

func TestFormatReferenceNumber(t *testing.T) {
	date := time.Date(2025, 1, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "JRNL-20250131-", ReferencePrefix("", date))
	assert.Equal(t, "JRNL-20250131-0001", FormatReferenceNumber(domain.JournalRefPrefix, date, 1))
	assert.Equal(t, "LOG-20250131-0042", FormatReferenceNumber(domain.GoodsReceiptRefPrefix, date, 42))
	assert.Equal(t, "JRNL-20250131-12345", FormatReferenceNumber("JRNL", date, 12345))
}
