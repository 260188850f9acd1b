package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

func TestUsageLedgerMemory_Periods(t *testing.T) {
	ledger := NewUsageLedgerMemory()
	ctx := context.Background()

	day1 := time.Date(2026, time.May, 30, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	nextMonth := day1.AddDate(0, 0, 2)

	_ = ledger.Record(ctx, "acc", decimal.NewFromInt(1000), day1)
	_ = ledger.Record(ctx, "acc", decimal.NewFromInt(500), day2)

	daily, monthly, _ := ledger.Usage(ctx, "acc", day2)
	if !daily.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected daily 500, got %s", daily)
	}
	if !monthly.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected monthly 1500, got %s", monthly)
	}

	daily, monthly, _ = ledger.Usage(ctx, "acc", nextMonth)
	if !daily.IsZero() || !monthly.IsZero() {
		t.Errorf("expected fresh period in June, got %s/%s", daily, monthly)
	}
}

func TestUsageLedgerMemory_Reserve(t *testing.T) {
	ledger := NewUsageLedgerMemory()
	ctx := context.Background()
	now := time.Date(2026, time.May, 12, 10, 0, 0, 0, time.UTC)
	limits := domain.Limits{
		PerTransaction: decimal.NewFromInt(50000),
		Daily:          decimal.NewFromInt(100000),
		Monthly:        decimal.NewFromInt(150000),
	}

	if err := ledger.Reserve(ctx, "acc", decimal.NewFromInt(80000), limits, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ledger.Reserve(ctx, "acc", decimal.NewFromInt(30000), limits, now)
	var lerr *domain.LimitError
	if !errors.As(err, &lerr) || lerr.Kind != domain.KindExceedsDailyLimit || !lerr.Remaining.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("expected daily limit with 20000 remaining, got %v", err)
	}
	if !errors.Is(err, domain.ErrLimitExceeded) {
		t.Errorf("expected ErrLimitExceeded in chain")
	}

	daily, _, _ := ledger.Usage(ctx, "acc", now)
	if !daily.Equal(decimal.NewFromInt(80000)) {
		t.Errorf("rejected reservation must not change usage, got %s", daily)
	}

	// Next day: the daily total resets, the monthly one does not.
	tomorrow := now.AddDate(0, 0, 1)
	err = ledger.Reserve(ctx, "acc", decimal.NewFromInt(80000), limits, tomorrow)
	if !errors.As(err, &lerr) || lerr.Kind != domain.KindExceedsMonthlyLimit || !lerr.Remaining.Equal(decimal.NewFromInt(70000)) {
		t.Fatalf("expected monthly limit with 70000 remaining, got %v", err)
	}

	if err := ledger.Release(ctx, "acc", decimal.NewFromInt(80000), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	daily, monthly, _ := ledger.Usage(ctx, "acc", now)
	if !daily.IsZero() || !monthly.IsZero() {
		t.Errorf("expected usage released, got %s/%s", daily, monthly)
	}
}

func TestUsageLedgerMemory_ReserveConcurrent(t *testing.T) {
	ledger := NewUsageLedgerMemory()
	ctx := context.Background()
	now := time.Date(2026, time.May, 12, 10, 0, 0, 0, time.UTC)
	limits := domain.Limits{Daily: decimal.NewFromInt(100000)}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.Reserve(ctx, "acc", decimal.NewFromInt(30000), limits, now)
		}()
	}
	wg.Wait()

	daily, _, _ := ledger.Usage(ctx, "acc", now)
	if !daily.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("expected exactly three reservations, got %s", daily)
	}
}
