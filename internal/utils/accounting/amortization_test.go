package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallmentDetails_TwelveMonthFlatSchedule(t *testing.T) {
	principal := decimal.NewFromInt(12_000_000)
	rate := decimal.NewFromInt(2)

	first := InstallmentDetails(principal, 12, rate, 1)
	assert.True(t, first.Principal.Equal(decimal.NewFromInt(1_000_000)), "principal: %s", first.Principal)
	assert.True(t, first.Interest.Equal(decimal.NewFromInt(240_000)), "interest: %s", first.Interest)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(1_240_000)), "total: %s", first.Total)

	last := InstallmentDetails(principal, 12, rate, 12)
	assert.True(t, last.Principal.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, last.Interest.Equal(decimal.NewFromInt(20_000)), "interest: %s", last.Interest)
	assert.True(t, last.Total.Equal(decimal.NewFromInt(1_020_000)))
}

func TestInstallmentDetails_InterestStrictlyDecreasing(t *testing.T) {
	principal := decimal.NewFromInt(12_000_000)
	rate := decimal.NewFromInt(2)

	sum := decimal.Zero
	prev := InstallmentDetails(principal, 12, rate, 1)
	sum = sum.Add(prev.Principal)
	for n := 2; n <= 12; n++ {
		cur := InstallmentDetails(principal, 12, rate, n)
		assert.True(t, cur.Principal.Equal(decimal.NewFromInt(1_000_000)), "installment %d", n)
		assert.True(t, cur.Interest.LessThan(prev.Interest), "installment %d interest %s should be below %s", n, cur.Interest, prev.Interest)
		sum = sum.Add(cur.Principal)
		prev = cur
	}
	assert.True(t, sum.Equal(principal), "sum of principal components %s", sum)
}

func TestInstallmentDetails_NonPositiveTenor(t *testing.T) {
	for _, tenor := range []int{0, -3} {
		got := InstallmentDetails(decimal.NewFromInt(5_000_000), tenor, decimal.NewFromInt(2), 1)
		assert.True(t, got.Principal.IsZero())
		assert.True(t, got.Interest.IsZero())
		assert.True(t, got.Total.IsZero())
	}
}

func TestInstallmentDetails_ZeroRate(t *testing.T) {
	got := InstallmentDetails(decimal.NewFromInt(3_000_000), 6, decimal.Zero, 4)
	assert.True(t, got.Principal.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, got.Interest.IsZero())
	assert.True(t, got.Total.Equal(got.Principal))
}

func TestSchedule(t *testing.T) {
	schedule := Schedule(decimal.NewFromInt(6_000_000), 6, decimal.NewFromFloat(1.5))
	require.Len(t, schedule, 6)
	assert.Equal(t, 1, schedule[0].Number)
	assert.Equal(t, 6, schedule[5].Number)
	// 6,000,000 * 1.5% = 90,000; last: 1,000,000 * 1.5% = 15,000
	assert.True(t, schedule[0].Interest.Equal(decimal.NewFromInt(90_000)), schedule[0].Interest.String())
	assert.True(t, schedule[5].Interest.Equal(decimal.NewFromInt(15_000)), schedule[5].Interest.String())

	assert.Nil(t, Schedule(decimal.NewFromInt(1), 0, decimal.Zero))
}

func TestInstallment_Rounded(t *testing.T) {
	second := InstallmentDetails(decimal.NewFromInt(10_000_000), 3, decimal.NewFromInt(1), 2)
	require.False(t, second.Principal.Equal(second.Principal.Round(2)), "principal does not divide evenly")

	got := second.Rounded()
	assert.Equal(t, 2, got.Number)
	assert.Equal(t, "3333333.33", got.Principal.StringFixed(2))
	assert.Equal(t, "66666.67", got.Interest.StringFixed(2))
	assert.True(t, got.Total.Equal(got.Principal.Add(got.Interest)), "total %s", got.Total)
	assert.Equal(t, int32(-2), got.Principal.Exponent())
}
