package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is an account's debit/credit totals and its balance on the normal side.
type AccountBalance struct {
	AccountID     int64           `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalance lists every account's balance as of a date.
type TrialBalance struct {
	AsOf        time.Time        `json:"asOf"`
	Rows        []AccountBalance `json:"rows"`
	TotalDebit  decimal.Decimal  `json:"totalDebit"`
	TotalCredit decimal.Decimal  `json:"totalCredit"`
	Balanced    bool             `json:"balanced"`
}

// LedgerEntry is one line in an account's general ledger with its running balance.
type LedgerEntry struct {
	JournalID       int64           `json:"journalID"`
	EntryDate       time.Time       `json:"entryDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is an account's activity over [From, To) with the balance brought forward.
type AccountLedger struct {
	Account        Account         `json:"account"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Entries        []LedgerEntry   `json:"entries"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// JournalImbalance reports a journal whose stored lines violate the balance invariant.
type JournalImbalance struct {
	JournalID   int64           `json:"journalID"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	LineCount   int             `json:"lineCount"`
}

// ProfitAndLoss summarises Revenue, COGS and Expense movement for a period.
type ProfitAndLoss struct {
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Revenue   []AccountMovement `json:"revenue"`
	Costs     []AccountMovement `json:"costs"`
	NetIncome decimal.Decimal   `json:"netIncome"`
}
