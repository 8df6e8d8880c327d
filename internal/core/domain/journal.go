package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a journal line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Reference number prefixes. Goods-receipt journals use their own series.
const (
	JournalRefPrefix      = "JRNL"
	GoodsReceiptRefPrefix = "LOG"
)

// Journal is a balanced financial event: a header plus at least two lines.
type Journal struct {
	JournalID       int64         `json:"journalID"`
	EntryDate       time.Time     `json:"entryDate"`
	Description     string        `json:"description"`
	ReferenceNumber string        `json:"referenceNumber"`
	Lines           []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single posting against one account. Exactly one of Debit or Credit is non-zero.
type JournalLine struct {
	LineID    int64           `json:"lineID,omitempty"`
	JournalID int64           `json:"journalID,omitempty"`
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// Side returns which side of the line carries the amount.
func (l JournalLine) Side() TransactionType {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// DebitLine builds a debit posting.
func DebitLine(accountID int64, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero}
}

// CreditLine builds a credit posting.
func CreditLine(accountID int64, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount}
}

// JournalRequest is what an orchestrator hands to the journal engine.
// An empty ReferenceNumber asks the engine to generate one using ReferencePrefix
// (JournalRefPrefix when empty) and Date.
type JournalRequest struct {
	Date            time.Time
	Description     string
	Lines           []JournalLine
	ReferenceNumber string
	ReferencePrefix string
	CreatedBy       string
}
