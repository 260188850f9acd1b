package repository

import (
	"context"
	"sync"

	"bankcalc/domain"
)

type LoanRecord struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []LoanRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{}
}

// Save stores the loan calculation in memory.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, LoanRecord{Input: input, Result: result})
	return nil
}

// Records returns a copy of the saved calculations.
func (r *LoanRepositoryMemory) Records() []LoanRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LoanRecord, len(r.data))
	copy(out, r.data)
	return out
}
