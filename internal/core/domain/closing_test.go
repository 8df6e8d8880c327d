package domain_test

import (
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Bounds(t *testing.T) {
	p, err := domain.NewPeriod(2024, 2)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.LastDay(), "leap year")

	dec, err := domain.NewPeriod(2025, 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), dec.LastDay())
	assert.Equal(t, "2025-12", dec.String())
}

func TestCivilDate_KeepsLocalCalendarDay(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	earlyApril := time.Date(2024, 4, 1, 5, 0, 0, 0, wib) // 2024-03-31 22:00 UTC

	got := domain.CivilDate(earlyApril)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, domain.PeriodOf(earlyApril), domain.PeriodOf(got))
	assert.False(t, got.Before(domain.Period{Year: 2024, Month: 4}.Start()))
}

func TestNewPeriod_Invalid(t *testing.T) {
	_, err := domain.NewPeriod(2025, 13)
	assert.Error(t, err)
	_, err = domain.NewPeriod(2025, 0)
	assert.Error(t, err)
}

func TestPeriod_After(t *testing.T) {
	jan := domain.Period{Year: 2025, Month: 1}
	dec := domain.Period{Year: 2024, Month: 12}
	assert.True(t, jan.After(dec))
	assert.False(t, dec.After(jan))
	assert.False(t, jan.After(jan))
}

func TestAccountMovement_Net(t *testing.T) {
	rev := domain.AccountMovement{AccountType: domain.Revenue, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(110)}
	exp := domain.AccountMovement{AccountType: domain.Expense, Debit: decimal.NewFromInt(40), Credit: decimal.NewFromInt(5)}

	assert.True(t, rev.Net().Equal(decimal.NewFromInt(100)))
	assert.True(t, exp.Net().Equal(decimal.NewFromInt(35)))
}
