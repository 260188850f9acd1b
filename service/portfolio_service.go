package service

import (
	"fmt"

	"bankcalc/domain"
)

// Summarize totals a set of holdings. Returns are zero percent when nothing
// has been invested.
func Summarize(holdings []domain.Holding) (domain.PortfolioSummary, error) {
	var s domain.PortfolioSummary
	for _, h := range holdings {
		if h.InvestedAmount < 0 || h.CurrentValue < 0 {
			return domain.PortfolioSummary{}, fmt.Errorf("%w: holding %q has negative amounts", domain.ErrInvalidInput, h.Name)
		}
		s.TotalInvested += h.InvestedAmount
		s.TotalCurrent += h.CurrentValue
	}

	s.TotalInvested = roundTo2Decimals(s.TotalInvested)
	s.TotalCurrent = roundTo2Decimals(s.TotalCurrent)
	s.Returns = roundTo2Decimals(s.TotalCurrent - s.TotalInvested)
	if s.TotalInvested > 0 {
		s.ReturnsPercent = roundTo2Decimals(s.Returns / s.TotalInvested * 100)
	}
	return s, nil
}

// AssessRisk maps questionnaire answers (1 to 5 each) to a risk profile.
func AssessRisk(answers []int) (domain.RiskAssessment, error) {
	if len(answers) != RiskQuestions {
		return domain.RiskAssessment{}, fmt.Errorf("%w: expected %d answers, got %d", domain.ErrInvalidInput, RiskQuestions, len(answers))
	}

	sum := 0
	for i, a := range answers {
		if a < 1 || a > 5 {
			return domain.RiskAssessment{}, fmt.Errorf("%w: answer %d out of range", domain.ErrInvalidInput, i+1)
		}
		sum += a
	}
	avg := float64(sum) / float64(len(answers))

	profile := domain.Conservative
	if avg >= 3 {
		profile = domain.Moderate
	}
	if avg >= 4 {
		profile = domain.Aggressive
	}
	return domain.RiskAssessment{AverageScore: avg, Profile: profile}, nil
}
