package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	COGS      AccountType = "COGS"
	Expense   AccountType = "Expense"
)

// Valid reports whether t is one of the six chart-of-accounts types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, COGS, Expense:
		return true
	}
	return false
}

// NormalSide is the side on which the account's balance grows.
func (t AccountType) NormalSide() TransactionType {
	switch t {
	case Asset, COGS, Expense:
		return Debit
	default:
		return Credit
	}
}

// IsNominal reports whether the account is zeroed by the monthly close.
func (t AccountType) IsNominal() bool {
	return t == Revenue || t == COGS || t == Expense
}

// Account is an entry of the chart of accounts.
type Account struct {
	AccountID     int64       `json:"accountID"`
	AccountNumber string      `json:"accountNumber"`
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	ParentID      *int64      `json:"parentID,omitempty"`
	// HasChildren is derived from the hierarchy; parent accounts are never posted to.
	HasChildren bool `json:"hasChildren"`
}

// IsLeaf reports whether postings may target the account.
func (a Account) IsLeaf() bool {
	return !a.HasChildren
}

// AccountNames maps the well-known ledger roles to chart-of-accounts names.
// The values come from configuration so a cooperative can keep its own COA wording.
type AccountNames struct {
	Cash            string
	LoanReceivable  string
	InterestIncome  string
	IncomeSummary   string
	SalesRevenue    string
	CostOfGoodsSold string
	Inventory       string
	AccountsPayable string
	SHUCurrentYear  string
	SHUPayable      string
}

// DefaultAccountNames returns the Indonesian COA names used out of the box.
func DefaultAccountNames() AccountNames {
	return AccountNames{
		Cash:            "Kas",
		LoanReceivable:  "Piutang Pinjaman Anggota",
		InterestIncome:  "Pendapatan Jasa Pinjaman",
		IncomeSummary:   "Ikhtisar Laba Rugi",
		SalesRevenue:    "Pendapatan Penjualan",
		CostOfGoodsSold: "Harga Pokok Penjualan",
		Inventory:       "Persediaan Barang Dagang",
		AccountsPayable: "Hutang Usaha",
		SHUCurrentYear:  "SHU Tahun Berjalan",
		SHUPayable:      "Hutang SHU Anggota",
	}
}
