package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLimitExceeded     = errors.New("transfer limit exceeded")
)

type ErrorKind string

const (
	KindInvalidInput               ErrorKind = "invalid_input"
	KindInvalidAmount              ErrorKind = "invalid_amount"
	KindExceedsPerTransactionLimit ErrorKind = "exceeds_per_transaction_limit"
	KindExceedsDailyLimit          ErrorKind = "exceeds_daily_limit"
	KindExceedsMonthlyLimit        ErrorKind = "exceeds_monthly_limit"
	KindInsufficientBalance        ErrorKind = "insufficient_balance"
	KindMissingRequiredField       ErrorKind = "missing_required_field"
	KindInvalidFormat              ErrorKind = "invalid_format"
)

// LimitError names the period limit a reservation would break and what is
// still allowed in that period.
type LimitError struct {
	Kind      ErrorKind
	Remaining decimal.Decimal
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s remaining", e.Kind, e.Remaining)
}

func (e *LimitError) Unwrap() error { return ErrLimitExceeded }
