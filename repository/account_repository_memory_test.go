package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

func TestAccountRepositoryMemory_DebitCredit(t *testing.T) {
	repo := NewAccountRepositoryMemory(domain.Account{ID: "sav", Balance: decimal.NewFromInt(1000)})
	ctx := context.Background()

	if err := repo.Debit(ctx, "sav", decimal.NewFromInt(1500)); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := repo.Debit(ctx, "sav", decimal.NewFromInt(400)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Credit(ctx, "sav", decimal.NewFromInt(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := repo.Get(ctx, "sav")
	if !a.Balance.Equal(decimal.NewFromInt(650)) {
		t.Errorf("expected 650, got %s", a.Balance)
	}

	if err := repo.Credit(ctx, "missing", decimal.NewFromInt(1)); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
