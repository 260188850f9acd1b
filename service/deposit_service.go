package service

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
)

type DepositService struct {
	minAmount   float64
	penaltyRate float64
	logger      *logrus.Logger
}

func NewDepositService(minAmount, penaltyRate float64, logger *logrus.Logger) *DepositService {
	return &DepositService{minAmount: minAmount, penaltyRate: penaltyRate, logger: logger}
}

func (s *DepositService) Maturity(input domain.DepositInput) (domain.DepositResult, error) {
	return ComputeMaturity(input)
}

// Quote validates a new fixed deposit against the minimum amount and the
// offered tenures and prices it from opening date at.
func (s *DepositService) Quote(input domain.DepositInput, at time.Time) (domain.DepositQuote, error) {
	if input.Amount < s.minAmount {
		return domain.DepositQuote{}, fmt.Errorf("%w: minimum deposit amount is %.0f", domain.ErrInvalidInput, s.minAmount)
	}
	if !slices.Contains(DepositTenureOptions, input.TenureMonths) {
		return domain.DepositQuote{}, fmt.Errorf("%w: tenure must be one of %v months", domain.ErrInvalidInput, DepositTenureOptions)
	}

	result, err := ComputeMaturity(input)
	if err != nil {
		return domain.DepositQuote{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"amount":   input.Amount,
		"rate":     input.InterestRate,
		"tenure":   input.TenureMonths,
		"maturity": result.MaturityAmount,
	}).Info("Fixed deposit quoted")

	return domain.DepositQuote{
		DepositInput:  input,
		DepositResult: result,
		MaturityDate:  at.AddDate(0, input.TenureMonths, 0),
	}, nil
}

// PrematureWithdrawal prices breaking a deposit after elapsedMonths: the rate
// drops by the penalty and compounds only over the elapsed period.
func (s *DepositService) PrematureWithdrawal(input domain.WithdrawalInput) (domain.WithdrawalResult, error) {
	if input.ElapsedMonths <= 0 {
		return domain.WithdrawalResult{}, fmt.Errorf("%w: elapsed months must be positive", domain.ErrInvalidInput)
	}
	if err := validateTerms(input.Amount, input.InterestRate, input.ElapsedMonths); err != nil {
		return domain.WithdrawalResult{}, err
	}
	if input.TenureMonths > 0 && input.ElapsedMonths >= input.TenureMonths {
		return domain.WithdrawalResult{}, fmt.Errorf("%w: deposit has already matured", domain.ErrInvalidInput)
	}

	reduced := math.Max(0, input.InterestRate-s.penaltyRate)
	result, err := ComputeMaturity(domain.DepositInput{
		Amount:       input.Amount,
		InterestRate: reduced,
		TenureMonths: input.ElapsedMonths,
	})
	if err != nil {
		return domain.WithdrawalResult{}, err
	}

	return domain.WithdrawalResult{
		PenaltyRate: s.penaltyRate,
		ReducedRate: roundTo2Decimals(reduced),
		Amount:      result.MaturityAmount,
	}, nil
}
