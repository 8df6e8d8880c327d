package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementEpsilon is the net movement below which an account is treated as untouched by the close.
var MovementEpsilon = decimal.New(5, -3)

// MonthlyClosing records that an accounting month is closed. Existence of the row is the closed state.
type MonthlyClosing struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	ClosedAt  time.Time       `json:"closedAt"`
	ClosedBy  string          `json:"closedBy"`
	NetIncome decimal.Decimal `json:"netIncome"`
	JournalID *int64          `json:"journalID,omitempty"`
}

// Period identifies a calendar month.
type Period struct {
	Year  int
	Month int
}

// NewPeriod validates a (year, month) pair.
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month %d out of range", month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("year %d out of range", year)
	}
	return Period{Year: year, Month: month}, nil
}

// CivilDate keeps the calendar day of t as seen in t's own zone and returns it
// as midnight UTC, the form entry dates are stored and compared in.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PeriodOf returns the period a date falls in.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Start is the first instant of the month (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following month; ranges are [Start, End).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// LastDay is the last calendar day of the month, used as the closing journal date.
func (p Period) LastDay() time.Time {
	return p.End().AddDate(0, 0, -1)
}

// After reports whether p is chronologically later than o.
func (p Period) After(o Period) bool {
	if p.Year != o.Year {
		return p.Year > o.Year
	}
	return p.Month > o.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// AccountMovement is the debit and credit total of one account over a date range.
type AccountMovement struct {
	AccountID   int64           `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Net is the movement measured on the account's normal side
// (credit-debit for Revenue, debit-credit for COGS and Expense).
func (m AccountMovement) Net() decimal.Decimal {
	if m.AccountType.NormalSide() == Debit {
		return m.Debit.Sub(m.Credit)
	}
	return m.Credit.Sub(m.Debit)
}
