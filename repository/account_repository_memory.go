package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

type AccountRepositoryMemory struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func NewAccountRepositoryMemory(accounts ...domain.Account) *AccountRepositoryMemory {
	r := &AccountRepositoryMemory{accounts: make(map[string]domain.Account, len(accounts))}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *AccountRepositoryMemory) Get(_ context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (r *AccountRepositoryMemory) Debit(_ context.Context, id string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	if a.Balance.LessThan(amount) {
		return fmt.Errorf("account %s: %w", id, domain.ErrInsufficientFunds)
	}
	a.Balance = a.Balance.Sub(amount)
	r.accounts[id] = a
	return nil
}

func (r *AccountRepositoryMemory) Credit(_ context.Context, id string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	a.Balance = a.Balance.Add(amount)
	r.accounts[id] = a
	return nil
}
