package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

type AccountRepository interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	// Debit fails with domain.ErrInsufficientFunds when the balance would go negative.
	Debit(ctx context.Context, id string, amount decimal.Decimal) error
	Credit(ctx context.Context, id string, amount decimal.Decimal) error
}
