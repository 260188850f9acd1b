package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bankcalc/domain"
)

type TransferRepository interface {
	Save(ctx context.Context, t domain.Transfer) error
	Get(ctx context.Context, id uuid.UUID) (domain.Transfer, error)
	// ListDue returns scheduled transfers whose date is not after now, oldest first.
	ListDue(ctx context.Context, now time.Time) ([]domain.Transfer, error)
	// Claim moves a scheduled transfer to processing so no other run picks it
	// up. It reports false when the transfer is no longer scheduled.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, t domain.Transfer) error
}
