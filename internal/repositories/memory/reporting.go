package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountBalances returns totals for every account with at least one line dated before 'before'.
func (v *view) AccountBalances(_ context.Context, before time.Time) ([]domain.AccountBalance, error) {
	st, done := v.begin()
	defer done()
	byAccount := make(map[int64]*domain.AccountBalance)
	for _, j := range st.journals {
		if !j.EntryDate.Before(before) {
			continue
		}
		for _, l := range j.Lines {
			b, ok := byAccount[l.AccountID]
			if !ok {
				a := st.accounts[l.AccountID]
				b = &domain.AccountBalance{
					AccountID:     a.AccountID,
					AccountNumber: a.AccountNumber,
					AccountName:   a.Name,
					AccountType:   a.AccountType,
					Debit:         decimal.Zero,
					Credit:        decimal.Zero,
				}
				byAccount[l.AccountID] = b
			}
			b.Debit = b.Debit.Add(l.Debit)
			b.Credit = b.Credit.Add(l.Credit)
		}
	}

	rows := make([]domain.AccountBalance, 0, len(byAccount))
	for _, b := range byAccount {
		rows = append(rows, *b)
	}
	slices.SortFunc(rows, func(a, b domain.AccountBalance) int { return cmp.Compare(a.AccountNumber, b.AccountNumber) })
	return rows, nil
}

func (v *view) AccountTotals(_ context.Context, accountID int64, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	st, done := v.begin()
	defer done()
	debit, credit := decimal.Zero, decimal.Zero
	for _, j := range st.journals {
		if !j.EntryDate.Before(before) {
			continue
		}
		for _, l := range j.Lines {
			if l.AccountID == accountID {
				debit = debit.Add(l.Debit)
				credit = credit.Add(l.Credit)
			}
		}
	}
	return debit, credit, nil
}

func (v *view) LedgerLines(_ context.Context, accountID int64, from, to time.Time) ([]domain.LedgerEntry, error) {
	st, done := v.begin()
	defer done()
	type keyed struct {
		entry  domain.LedgerEntry
		lineID int64
	}
	var found []keyed
	for _, j := range st.journals {
		if j.EntryDate.Before(from) || !j.EntryDate.Before(to) {
			continue
		}
		for _, l := range j.Lines {
			if l.AccountID != accountID {
				continue
			}
			found = append(found, keyed{
				entry: domain.LedgerEntry{
					JournalID:       j.JournalID,
					EntryDate:       j.EntryDate,
					ReferenceNumber: j.ReferenceNumber,
					Description:     j.Description,
					Debit:           l.Debit,
					Credit:          l.Credit,
					RunningBalance:  decimal.Zero,
				},
				lineID: l.LineID,
			})
		}
	}
	slices.SortFunc(found, func(a, b keyed) int {
		if c := a.entry.EntryDate.Compare(b.entry.EntryDate); c != 0 {
			return c
		}
		if c := cmp.Compare(a.entry.JournalID, b.entry.JournalID); c != 0 {
			return c
		}
		return cmp.Compare(a.lineID, b.lineID)
	})

	entries := make([]domain.LedgerEntry, len(found))
	for i, k := range found {
		entries[i] = k.entry
	}
	return entries, nil
}

func (v *view) FindImbalancedJournals(_ context.Context, tolerance decimal.Decimal) ([]domain.JournalImbalance, error) {
	st, done := v.begin()
	defer done()
	var imbalanced []domain.JournalImbalance
	for _, j := range st.journals {
		debit, credit := accounting.Totals(j.Lines)
		if len(j.Lines) >= 2 && debit.IsPositive() && debit.Sub(credit).Abs().LessThanOrEqual(tolerance) {
			continue
		}
		imbalanced = append(imbalanced, domain.JournalImbalance{
			JournalID:   j.JournalID,
			TotalDebit:  debit,
			TotalCredit: credit,
			LineCount:   len(j.Lines),
		})
	}
	slices.SortFunc(imbalanced, func(a, b domain.JournalImbalance) int { return cmp.Compare(a.JournalID, b.JournalID) })
	return imbalanced, nil
}
