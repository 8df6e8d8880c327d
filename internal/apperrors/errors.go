package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the actor's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is the generic error surfaced in place of storage failures.
var ErrInternal = errors.New("internal error")

// Ledger specific errors.
var (
	// ErrConfiguration is a deployment defect: a required chart-of-accounts mapping is missing.
	ErrConfiguration = errors.New("ledger is not configured")
	// ErrUnbalancedJournal means the orchestrator produced a journal whose debits and credits differ.
	ErrUnbalancedJournal = errors.New("journal is not balanced")
	// ErrPeriodClosed rejects postings or deletions dated inside a closed month.
	ErrPeriodClosed = errors.New("accounting period is closed")
	// ErrAlreadyClosed is returned when closing a month that already has a closing record.
	ErrAlreadyClosed = errors.New("month is already closed")
	// ErrSubsequentMonthClosed is returned when reopening a month that is not the latest closed one.
	ErrSubsequentMonthClosed = errors.New("a later month is already closed")
	// ErrOutOfSequence is returned when an installment is paid or cancelled out of order.
	ErrOutOfSequence = errors.New("installment out of sequence")
	// ErrAlreadyPaid is returned when an approved payment already exists for the installment.
	ErrAlreadyPaid = errors.New("installment already paid")
	// ErrInvalidTransition is returned for status changes the state table does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInsufficientBalance covers savings withdrawals, stock and payable overpayment.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// AppError carries an HTTP-ish status code with a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// ConfigurationError lists the chart-of-accounts names that could not be resolved.
type ConfigurationError struct {
	MissingAccounts []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: account(s) %s not found in chart of accounts", ErrConfiguration.Error(), strings.Join(e.MissingAccounts, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Hint tells an operator how to fix the deployment.
func (e *ConfigurationError) Hint() string {
	return fmt.Sprintf("create leaf account(s) named %q in the chart of accounts or update the ACCOUNT_* settings", e.MissingAccounts)
}
