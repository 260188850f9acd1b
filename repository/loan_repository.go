package repository

import (
	"context"

	"bankcalc/domain"
)

// LoanRepository keeps a log of performed loan calculations.
type LoanRepository interface {
	Save(ctx context.Context, input domain.LoanInput, result domain.LoanResult) error
}
