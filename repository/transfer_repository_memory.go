package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bankcalc/domain"
)

type TransferRepositoryMemory struct {
	mu        sync.RWMutex
	transfers map[uuid.UUID]domain.Transfer
}

func NewTransferRepositoryMemory() *TransferRepositoryMemory {
	return &TransferRepositoryMemory{transfers: make(map[uuid.UUID]domain.Transfer)}
}

func (r *TransferRepositoryMemory) Save(_ context.Context, t domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transfers[t.ID]; exists {
		return fmt.Errorf("transfer %s already exists", t.ID)
	}
	r.transfers[t.ID] = t
	return nil
}

func (r *TransferRepositoryMemory) Get(_ context.Context, id uuid.UUID) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transfers[id]
	if !ok {
		return domain.Transfer{}, fmt.Errorf("transfer %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func (r *TransferRepositoryMemory) ListDue(_ context.Context, now time.Time) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []domain.Transfer
	for _, t := range r.transfers {
		if t.Status == domain.StatusScheduled && t.ScheduledFor != nil && !t.ScheduledFor.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(*due[j].ScheduledFor)
	})
	return due, nil
}

func (r *TransferRepositoryMemory) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transfers[id]
	if !ok {
		return false, fmt.Errorf("transfer %s: %w", id, domain.ErrNotFound)
	}
	if t.Status != domain.StatusScheduled {
		return false, nil
	}
	t.Status = domain.StatusProcessing
	r.transfers[id] = t
	return true, nil
}

func (r *TransferRepositoryMemory) Update(_ context.Context, t domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transfers[t.ID]; !ok {
		return fmt.Errorf("transfer %s: %w", t.ID, domain.ErrNotFound)
	}
	r.transfers[t.ID] = t
	return nil
}
