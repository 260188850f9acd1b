package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

type UsageLedgerMemory struct {
	mu      sync.Mutex
	daily   map[string]decimal.Decimal
	monthly map[string]decimal.Decimal
}

func NewUsageLedgerMemory() *UsageLedgerMemory {
	return &UsageLedgerMemory{
		daily:   make(map[string]decimal.Decimal),
		monthly: make(map[string]decimal.Decimal),
	}
}

func (l *UsageLedgerMemory) Usage(_ context.Context, accountID string, at time.Time) (decimal.Decimal, decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.daily[dayKey(accountID, at)], l.monthly[monthKey(accountID, at)], nil
}

func (l *UsageLedgerMemory) Record(_ context.Context, accountID string, amount decimal.Decimal, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dk, mk := dayKey(accountID, at), monthKey(accountID, at)
	l.daily[dk] = l.daily[dk].Add(amount)
	l.monthly[mk] = l.monthly[mk].Add(amount)
	return nil
}

func (l *UsageLedgerMemory) Reserve(_ context.Context, accountID string, amount decimal.Decimal, limits domain.Limits, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dk, mk := dayKey(accountID, at), monthKey(accountID, at)
	if err := checkLimits(l.daily[dk], l.monthly[mk], amount, limits); err != nil {
		return err
	}
	l.daily[dk] = l.daily[dk].Add(amount)
	l.monthly[mk] = l.monthly[mk].Add(amount)
	return nil
}

func (l *UsageLedgerMemory) Release(_ context.Context, accountID string, amount decimal.Decimal, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dk, mk := dayKey(accountID, at), monthKey(accountID, at)
	l.daily[dk] = decimal.Max(decimal.Zero, l.daily[dk].Sub(amount))
	l.monthly[mk] = decimal.Max(decimal.Zero, l.monthly[mk].Sub(amount))
	return nil
}
