package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

func TestTransferRepositoryMemory_ListDue(t *testing.T) {
	repo := NewTransferRepositoryMemory()
	ctx := context.Background()
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	later := domain.Transfer{ID: uuid.New(), Status: domain.StatusScheduled, ScheduledFor: at(-time.Hour)}
	earlier := domain.Transfer{ID: uuid.New(), Status: domain.StatusScheduled, ScheduledFor: at(-48 * time.Hour)}
	future := domain.Transfer{ID: uuid.New(), Status: domain.StatusScheduled, ScheduledFor: at(time.Hour)}
	done := domain.Transfer{ID: uuid.New(), Status: domain.StatusCompleted, Amount: decimal.NewFromInt(1)}

	for _, tr := range []domain.Transfer{later, earlier, future, done} {
		if err := repo.Save(ctx, tr); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	due, err := repo.ListDue(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 || due[0].ID != earlier.ID || due[1].ID != later.ID {
		t.Errorf("expected [earlier later], got %+v", due)
	}
}

func TestTransferRepositoryMemory_GetUpdate(t *testing.T) {
	repo := NewTransferRepositoryMemory()
	ctx := context.Background()

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	tr := domain.Transfer{ID: uuid.New(), Status: domain.StatusScheduled}
	_ = repo.Save(ctx, tr)
	if err := repo.Save(ctx, tr); err == nil {
		t.Errorf("expected duplicate save to fail")
	}

	tr.Status = domain.StatusFailed
	if err := repo.Update(ctx, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.Get(ctx, tr.ID)
	if got.Status != domain.StatusFailed {
		t.Errorf("expected failed status, got %s", got.Status)
	}
}

func TestTransferRepositoryMemory_ClaimOnce(t *testing.T) {
	repo := NewTransferRepositoryMemory()
	ctx := context.Background()
	due := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	tr := domain.Transfer{ID: uuid.New(), Status: domain.StatusScheduled, ScheduledFor: &due}
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claimed, err := repo.Claim(ctx, tr.ID)
	if err != nil || !claimed {
		t.Fatalf("expected first claim to win, got %v, %v", claimed, err)
	}
	claimed, err = repo.Claim(ctx, tr.ID)
	if err != nil || claimed {
		t.Fatalf("expected second claim to lose, got %v, %v", claimed, err)
	}

	list, _ := repo.ListDue(ctx, due.Add(time.Hour))
	if len(list) != 0 {
		t.Errorf("claimed transfer must not be listed as due, got %d", len(list))
	}

	if _, err := repo.Claim(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
