package domain

import "github.com/shopspring/decimal"

// The outcome types below are what orchestrators return after their unit of work
// commits. Effects are handed to the outbox dispatcher by the caller.

// LoanOutcome is the result of a loan status change.
type LoanOutcome struct {
	Loan    Loan     `json:"loan"`
	Effects []Effect `json:"-"`
}

// PaymentOutcome is the result of recording, approving or cancelling an installment.
type PaymentOutcome struct {
	Loan      Loan            `json:"loan"`
	Payment   LoanPayment     `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Effects   []Effect        `json:"-"`
}

// ClosingOutcome is the result of closing a month.
type ClosingOutcome struct {
	Closing   MonthlyClosing    `json:"closing"`
	Movements []AccountMovement `json:"movements"`
	Effects   []Effect          `json:"-"`
}

// SavingOutcome is the result of approving or rejecting a saving.
type SavingOutcome struct {
	Saving  Saving   `json:"saving"`
	Effects []Effect `json:"-"`
}

// SaleOutcome is the result of a cash sale.
type SaleOutcome struct {
	Sale    Sale     `json:"sale"`
	Effects []Effect `json:"-"`
}

// ReceiptOutcome is the result of receiving goods on credit.
type ReceiptOutcome struct {
	Receipt GoodsReceipt `json:"receipt"`
	Payable Payable      `json:"payable"`
	Effects []Effect     `json:"-"`
}

// PayableOutcome is the result of paying a supplier.
type PayableOutcome struct {
	Payable Payable        `json:"payable"`
	Payment PayablePayment `json:"payment"`
	Effects []Effect       `json:"-"`
}

// SHUOutcome is the result of a yearly SHU distribution.
type SHUOutcome struct {
	Distribution SHUDistribution `json:"distribution"`
	Effects      []Effect        `json:"-"`
}
