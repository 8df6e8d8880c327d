package accounting

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Installment is the split of one loan installment.
type Installment struct {
	Number    int             `json:"installmentNumber"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
}

// InstallmentDetails computes the principal/interest split of installment n on the
// cooperative's flat schedule: the principal component is equal for every installment
// and interest is charged on the scheduled (not the actually outstanding) balance.
//
// Historical payments were computed with exactly this order of operations, so it must not change.
func InstallmentDetails(principal decimal.Decimal, tenorMonths int, monthlyRatePercent decimal.Decimal, n int) Installment {
	if tenorMonths <= 0 {
		return Installment{Number: n, Principal: decimal.Zero, Interest: decimal.Zero, Total: decimal.Zero}
	}

	principalComponent := principal.Div(decimal.NewFromInt(int64(tenorMonths)))
	remainingBefore := principal.Sub(decimal.NewFromInt(int64(n - 1)).Mul(principalComponent))
	interestComponent := remainingBefore.Mul(monthlyRatePercent.Div(hundred))

	return Installment{
		Number:    n,
		Principal: principalComponent,
		Interest:  interestComponent,
		Total:     principalComponent.Add(interestComponent),
	}
}

// Rounded returns the installment in whole sen, the precision journal lines are stored at.
func (i Installment) Rounded() Installment {
	principal := i.Principal.Round(2)
	interest := i.Interest.Round(2)
	return Installment{Number: i.Number, Principal: principal, Interest: interest, Total: principal.Add(interest)}
}

// Schedule returns every installment of the loan.
func Schedule(principal decimal.Decimal, tenorMonths int, monthlyRatePercent decimal.Decimal) []Installment {
	if tenorMonths <= 0 {
		return nil
	}
	out := make([]Installment, 0, tenorMonths)
	for n := 1; n <= tenorMonths; n++ {
		out = append(out, InstallmentDetails(principal, tenorMonths, monthlyRatePercent, n))
	}
	return out
}
