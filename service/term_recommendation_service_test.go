package service

import (
	"errors"
	"math"
	"strings"
	"testing"

	"bankcalc/domain"
)

func TestRecommendTerm_MinimizeInterestPrefersShortTerms(t *testing.T) {
	svc := NewTermRecommendationService(testLogger())

	result, err := svc.RecommendTerm(domain.TermRecommendationInput{
		Amount:            12000,
		InterestRate:      12,
		MinTermMonths:     6,
		MaxTermMonths:     36,
		MaxMonthlyPayment: 1000,
		Preference:        domain.MinimizeInterest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top := result.Recommendations[0]
	if result.RecommendedTerm != top.TermMonths {
		t.Errorf("recommended term %d does not match top entry %d", result.RecommendedTerm, top.TermMonths)
	}
	if top.MonthlyPayment > 1000 {
		t.Errorf("recommended payment %.2f exceeds the cap", top.MonthlyPayment)
	}
	for _, r := range result.Recommendations {
		if r.MonthlyPayment > 1000 {
			t.Errorf("term %d exceeds the cap with %.2f", r.TermMonths, r.MonthlyPayment)
		}
		if r.Score > top.Score {
			t.Errorf("term %d outscores the recommendation", r.TermMonths)
		}
	}
	if result.RecommendedTerm > 18 {
		t.Errorf("expected a short term, got %d", result.RecommendedTerm)
	}
	if !strings.Contains(top.Reason, "months") {
		t.Errorf("expected an explanation, got %q", top.Reason)
	}
}

func TestRecommendTerm_SingleTerm(t *testing.T) {
	svc := NewTermRecommendationService(testLogger())

	result, err := svc.RecommendTerm(domain.TermRecommendationInput{
		Amount:            1200,
		InterestRate:      0,
		MinTermMonths:     12,
		MaxTermMonths:     12,
		MaxMonthlyPayment: 100,
		Preference:        domain.Balanced,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RecommendedTerm != 12 || len(result.Recommendations) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRecommendTerm_NothingAffordable(t *testing.T) {
	svc := NewTermRecommendationService(testLogger())

	_, err := svc.RecommendTerm(domain.TermRecommendationInput{
		Amount:            100000,
		InterestRate:      10,
		MinTermMonths:     1,
		MaxTermMonths:     12,
		MaxMonthlyPayment: 10,
		Preference:        domain.MinimizePayment,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecommendTerm_InvalidInput(t *testing.T) {
	svc := NewTermRecommendationService(testLogger())
	valid := domain.TermRecommendationInput{
		Amount: 1000, InterestRate: 10, MinTermMonths: 6, MaxTermMonths: 12,
		MaxMonthlyPayment: 500, Preference: domain.Balanced,
	}

	cases := map[string]func(*domain.TermRecommendationInput){
		"preference":  func(in *domain.TermRecommendationInput) { in.Preference = "cheapest" },
		"range":       func(in *domain.TermRecommendationInput) { in.MinTermMonths = 24 },
		"wide range":  func(in *domain.TermRecommendationInput) { in.MinTermMonths, in.MaxTermMonths = 1, 200 },
		"max payment": func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 0 },
		"huge amount": func(in *domain.TermRecommendationInput) { in.Amount = MaxLoanAmount * 10 },
		"NaN amount":  func(in *domain.TermRecommendationInput) { in.Amount = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			if _, err := svc.RecommendTerm(in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRecommendTerm_UnknownPreferenceMessage(t *testing.T) {
	_, err := NewTermRecommendationService(testLogger()).RecommendTerm(domain.TermRecommendationInput{
		Amount: 1000, InterestRate: 10, MinTermMonths: 6, MaxTermMonths: 12,
		MaxMonthlyPayment: 500, Preference: "cheapest",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if want := `invalid input: unknown preference "cheapest"`; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
