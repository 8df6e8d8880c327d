package memory

import (
	"fmt"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// SavingTypes are the savings products seeded by SeedChart; each is also a liability account.
var SavingTypes = []string{"Simpanan Pokok", "Simpanan Wajib", "Simpanan Sukarela"}

// GeneralExpense is an expense account seeded by SeedChart for manual journals.
const GeneralExpense = "Beban Umum"

// AddAccount stores a chart-of-accounts entry and returns its ID. A parent account
// is marked as having children so it can no longer be posted to.
func (s *Store) AddAccount(account domain.Account) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.AccountID = s.state.nextID()
	s.state.accounts[account.AccountID] = account
	if account.ParentID != nil {
		if parent, ok := s.state.accounts[*account.ParentID]; ok {
			parent.HasChildren = true
			s.state.accounts[parent.AccountID] = parent
		}
	}
	return account.AccountID
}

// SeedChart creates a leaf account for every configured name plus the savings
// products, and returns the IDs by name.
func (s *Store) SeedChart(names domain.AccountNames) map[string]int64 {
	chart := []struct {
		name string
		typ  domain.AccountType
	}{
		{names.Cash, domain.Asset},
		{names.LoanReceivable, domain.Asset},
		{names.Inventory, domain.Asset},
		{names.AccountsPayable, domain.Liability},
		{names.SHUPayable, domain.Liability},
		{names.IncomeSummary, domain.Equity},
		{names.SHUCurrentYear, domain.Equity},
		{names.InterestIncome, domain.Revenue},
		{names.SalesRevenue, domain.Revenue},
		{names.CostOfGoodsSold, domain.COGS},
		{GeneralExpense, domain.Expense},
	}
	for _, t := range SavingTypes {
		chart = append(chart, struct {
			name string
			typ  domain.AccountType
		}{t, domain.Liability})
	}

	ids := make(map[string]int64, len(chart))
	for i, c := range chart {
		ids[c.name] = s.AddAccount(domain.Account{
			AccountNumber: accountNumber(c.typ, i),
			Name:          c.name,
			AccountType:   c.typ,
		})
	}
	return ids
}

// AddProduct stores a catalog product and returns its ID.
func (s *Store) AddProduct(product domain.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ProductID = s.state.nextID()
	s.state.products[product.ProductID] = product
	return product.ProductID
}

// AddLoan stores a loan as-is and returns its ID.
func (s *Store) AddLoan(loan domain.Loan) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan.LoanID = s.state.nextID()
	s.state.loans[loan.LoanID] = loan
	return loan.LoanID
}

// AddSaving stores a saving transaction as-is and returns its ID.
func (s *Store) AddSaving(saving domain.Saving) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	saving.SavingID = s.state.nextID()
	s.state.savings[saving.SavingID] = saving
	return saving.SavingID
}

func accountNumber(t domain.AccountType, i int) string {
	class := map[domain.AccountType]int{
		domain.Asset: 1, domain.Liability: 2, domain.Equity: 3,
		domain.Revenue: 4, domain.COGS: 5, domain.Expense: 6,
	}[t]
	return fmt.Sprintf("%d-%03d", class, i+1)
}
