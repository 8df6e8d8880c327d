package accounting

import (
	"fmt"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference a journal may carry.
var BalanceTolerance = decimal.New(1, -2)

// CalculateSignedAmount returns the effect of a line on the account balance measured on its normal side.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/COGS/EXPENSE -> Positive (+)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.COGS, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %d", accountType, line.AccountID)
	}
}

// Totals sums the debit and credit sides of a set of lines.
func Totals(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateJournalBalance enforces the double-entry invariant on a journal's lines:
// at least two lines, no negative or mixed lines, debits equal credits within
// BalanceTolerance and a non-zero total. Every failure wraps apperrors.ErrUnbalancedJournal.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines, got %d", apperrors.ErrUnbalancedJournal, len(lines))
	}

	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrUnbalancedJournal, i+1)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrUnbalancedJournal, i+1)
		}
	}

	debit, credit := Totals(lines)
	if debit.Sub(credit).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedJournal, debit.String(), credit.String())
	}
	if !debit.IsPositive() {
		return fmt.Errorf("%w: journal total must be greater than zero", apperrors.ErrUnbalancedJournal)
	}
	return nil
}

// ReferencePrefix is the per-day prefix shared by every reference number of a series,
// e.g. "JRNL-20250131-".
func ReferencePrefix(series string, date time.Time) string {
	if series == "" {
		series = domain.JournalRefPrefix
	}
	return fmt.Sprintf("%s-%s-", series, date.Format("20060102"))
}

// FormatReferenceNumber renders the displayed reference, e.g. "JRNL-20250131-0007".
func FormatReferenceNumber(series string, date time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", ReferencePrefix(series, date), seq)
}
