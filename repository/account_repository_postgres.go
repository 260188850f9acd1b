package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

type AccountRepositoryPostgres struct {
	db *Pool
}

func NewAccountRepositoryPostgres(db *Pool) *AccountRepositoryPostgres {
	return &AccountRepositoryPostgres{db: db}
}

func (r *AccountRepositoryPostgres) Get(ctx context.Context, id string) (domain.Account, error) {
	var (
		a       domain.Account
		balance string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, type, account_number, balance::text FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Type, &a.AccountNumber, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account %s: %w", id, err)
	}

	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return domain.Account{}, fmt.Errorf("account %s balance: %w", id, err)
	}
	return a, nil
}

func (r *AccountRepositoryPostgres) Debit(ctx context.Context, id string, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET balance = balance - $2::numeric WHERE id = $1 AND balance >= $2::numeric`,
		id, amount.String(),
	)
	if err != nil {
		return fmt.Errorf("debit account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("account %s: %w", id, domain.ErrInsufficientFunds)
	}
	return nil
}

func (r *AccountRepositoryPostgres) Credit(ctx context.Context, id string, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET balance = balance + $2::numeric WHERE id = $1`,
		id, amount.String(),
	)
	if err != nil {
		return fmt.Errorf("credit account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Seed inserts accounts in a single transaction. Accounts that already
// exist keep their stored balance.
func (r *AccountRepositoryPostgres) Seed(ctx context.Context, accounts []domain.Account) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint

	var inserted int
	for _, a := range accounts {
		tag, err := tx.Exec(ctx, `
			INSERT INTO accounts (id, type, account_number, balance)
			VALUES ($1, $2, $3, $4::numeric)
			ON CONFLICT (id) DO NOTHING`,
			a.ID, a.Type, a.AccountNumber, a.Balance.String(),
		)
		if err != nil {
			return 0, fmt.Errorf("seed account %s: %w", a.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, tx.Commit(ctx)
}
