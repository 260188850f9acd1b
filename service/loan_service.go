package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/repository"
)

type LoanService struct {
	repo     repository.LoanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	logger   *logrus.Logger
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *LoanService {
	return &LoanService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func loanCacheKey(input domain.LoanInput) string {
	return fmt.Sprintf("emi:%g:%g:%d", input.Amount, input.InterestRate, input.TermMonths())
}

// CalculateLoan computes the EMI for input. Results are cached by amount, rate
// and term in months; cache and log failures never fail the calculation.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	result, err := ComputeEMI(input)
	if err != nil {
		return domain.LoanResult{}, err
	}

	key := loanCacheKey(input)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var hit domain.LoanResult
		if err := json.Unmarshal([]byte(cached), &hit); err == nil {
			s.logger.WithField("key", key).Debug("EMI served from cache")
			return hit, nil
		}
		s.logger.WithField("key", key).Warn("Discarding malformed cache entry")
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache loan calculation")
		}
	}

	if err := s.repo.Save(ctx, input, result); err != nil {
		s.logger.WithError(err).Warn("Failed to save loan calculation")
	}

	s.logger.WithFields(logrus.Fields{
		"amount":      input.Amount,
		"rate":        input.InterestRate,
		"term_months": input.TermMonths(),
		"emi":         result.MonthlyPayment,
	}).Info("Loan calculated")

	return result, nil
}

// Schedule returns the month-by-month amortization starting after start.
func (s *LoanService) Schedule(
	_ context.Context,
	input domain.LoanInput,
	start time.Time,
) ([]domain.Installment, error) {
	return AmortizationSchedule(input, start)
}
