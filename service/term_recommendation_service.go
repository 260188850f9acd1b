package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"bankcalc/domain"
)

const maxAlternatives = 3

type TermRecommendationService struct {
	logger *logrus.Logger
}

func NewTermRecommendationService(logger *logrus.Logger) *TermRecommendationService {
	return &TermRecommendationService{logger: logger}
}

// RecommendTerm evaluates every term in the requested range and ranks the
// affordable ones by preference.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if err := validateRecommendation(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		result, err := ComputeEMI(domain.LoanInput{
			Amount:       input.Amount,
			InterestRate: input.InterestRate,
			Tenure:       term,
		})
		if err != nil {
			s.logger.WithError(err).Warnf("Skipping term %d", term)
			continue
		}

		if result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Score:          calculateScore(result, input, term),
			Reason:         reasonFor(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: no term fits a monthly payment of %.2f",
			domain.ErrInvalidInput, input.MaxMonthlyPayment)
	}

	// Ties keep the shorter term first.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	recommendations[0].Reason = explain(recommendations, input.Preference)

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

func validateRecommendation(input domain.TermRecommendationInput) error {
	switch {
	case math.IsNaN(input.Amount) || input.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	case input.Amount > MaxLoanAmount:
		return fmt.Errorf("%w: amount exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxLoanAmount)
	case input.InterestRate < 0:
		return fmt.Errorf("%w: interest rate must not be negative", domain.ErrInvalidInput)
	case input.MinTermMonths <= 0 || input.MaxTermMonths <= 0:
		return fmt.Errorf("%w: terms must be positive", domain.ErrInvalidInput)
	case input.MinTermMonths > input.MaxTermMonths:
		return fmt.Errorf("%w: minimum term exceeds maximum term", domain.ErrInvalidInput)
	case input.MaxTermMonths > MaxTermMonths:
		return fmt.Errorf("%w: maximum term exceeds %d months", domain.ErrInvalidInput, MaxTermMonths)
	case input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths:
		return fmt.Errorf("%w: term range exceeds %d months", domain.ErrInvalidInput, MaxTermRangeMonths)
	case input.MaxMonthlyPayment <= 0:
		return fmt.Errorf("%w: maximum monthly payment must be positive", domain.ErrInvalidInput)
	}

	switch input.Preference {
	case domain.MinimizeInterest, domain.MinimizePayment, domain.Balanced:
		return nil
	}
	return fmt.Errorf("%w: unknown preference %q", domain.ErrInvalidInput, input.Preference)
}

// calculateScore normalizes interest, payment and term to 0..10 and weights
// them by preference.
func calculateScore(
	result domain.LoanResult,
	input domain.TermRecommendationInput,
	term int,
) float64 {
	maxPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MaxTermMonths) / 12
	minPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MinTermMonths) / 12
	interestRange := maxPossibleInterest - minPossibleInterest

	minPayment := input.Amount / float64(input.MaxTermMonths)
	paymentRange := input.MaxMonthlyPayment - minPayment

	var interestScore, paymentScore float64
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalInterest-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.MonthlyPayment-minPayment)/paymentRange)
	}
	if span := input.MaxTermMonths - input.MinTermMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(span))
	}

	var score float64
	switch input.Preference {
	case domain.MinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case domain.MinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case domain.Balanced:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(score)
}

func reasonFor(p domain.Preference) string {
	switch p {
	case domain.MinimizeInterest:
		return "Term optimized to minimize total interest cost"
	case domain.MinimizePayment:
		return "Term optimized to minimize the monthly payment"
	case domain.Balanced:
		return "Best balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}

func explain(recs []domain.TermRecommendation, p domain.Preference) string {
	top := recs[0]
	text := fmt.Sprintf("%s: %d months at %.0f per month, %.0f total interest.",
		reasonFor(p), top.TermMonths, top.MonthlyPayment, top.TotalInterest)

	for i := 1; i < len(recs) && i <= maxAlternatives; i++ {
		alt := recs[i]
		text += fmt.Sprintf(" Alternative: %d months at %.0f per month (%+.0f interest).",
			alt.TermMonths, alt.MonthlyPayment, alt.TotalInterest-top.TotalInterest)
	}
	return text
}
