package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"bankcalc/domain"
)

func TestComputeEMI_ReferenceLoan(t *testing.T) {
	result, err := ComputeEMI(domain.LoanInput{Amount: 100000, InterestRate: 12, Tenure: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 8885 {
		t.Errorf("expected monthly payment 8885, got %.2f", result.MonthlyPayment)
	}
	if result.TotalPayment != 106619 {
		t.Errorf("expected total payment 106619, got %.2f", result.TotalPayment)
	}
	if result.TotalInterest != 6619 {
		t.Errorf("expected total interest 6619, got %.2f", result.TotalInterest)
	}
	if result.PrincipalPercent != 93.8 || result.InterestPercent != 6.2 {
		t.Errorf("unexpected breakdown %.1f/%.1f", result.PrincipalPercent, result.InterestPercent)
	}
}

func TestComputeEMI_YearsTenure(t *testing.T) {
	inMonths, err := ComputeEMI(domain.LoanInput{Amount: 500000, InterestRate: 8.5, Tenure: 240})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inYears, err := ComputeEMI(domain.LoanInput{Amount: 500000, InterestRate: 8.5, Tenure: 20, TenureUnit: domain.TenureYears})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inMonths != inYears {
		t.Errorf("expected identical results, got %+v and %+v", inMonths, inYears)
	}
	if inYears.MonthlyPayment != 4339 {
		t.Errorf("expected 4339, got %.2f", inYears.MonthlyPayment)
	}
}

func TestComputeEMI_TotalsInvariant(t *testing.T) {
	inputs := []domain.LoanInput{
		{Amount: 1000, InterestRate: 0.5, Tenure: 1},
		{Amount: 25000, InterestRate: 9.99, Tenure: 36},
		{Amount: 750000, InterestRate: 14, Tenure: 15, TenureUnit: domain.TenureYears},
		{Amount: 1, InterestRate: 100, Tenure: 600},
	}

	for _, in := range inputs {
		result, err := ComputeEMI(in)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", in, err)
		}
		if result.TotalPayment < in.Amount {
			t.Errorf("%+v: total payable %.2f below principal", in, result.TotalPayment)
		}
		if diff := math.Abs(result.TotalInterest - (result.TotalPayment - in.Amount)); diff > 1 {
			t.Errorf("%+v: interest off by %.2f", in, diff)
		}
	}
}

// A zero rate has no reducing-balance EMI; the principal is split evenly.
func TestComputeEMI_ZeroInterest(t *testing.T) {
	result, err := ComputeEMI(domain.LoanInput{Amount: 1200, InterestRate: 0, Tenure: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 100 {
		t.Errorf("expected 100, got %.2f", result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Errorf("expected no interest, got %.2f", result.TotalInterest)
	}
}

func TestComputeEMI_InvalidInput(t *testing.T) {
	inputs := map[string]domain.LoanInput{
		"zero amount":     {Amount: 0, InterestRate: 10, Tenure: 12},
		"negative amount": {Amount: -5, InterestRate: 10, Tenure: 12},
		"negative rate":   {Amount: 1000, InterestRate: -1, Tenure: 12},
		"zero tenure":     {Amount: 1000, InterestRate: 10, Tenure: 0},
		"too long":        {Amount: 1000, InterestRate: 10, Tenure: 51, TenureUnit: domain.TenureYears},
		"unknown unit":    {Amount: 1000, InterestRate: 10, Tenure: 12, TenureUnit: "weeks"},
		"wrapping years":  {Amount: 1000, InterestRate: 10, Tenure: math.MaxInt/12 + 1, TenureUnit: domain.TenureYears},
		"negative years":  {Amount: 1000, InterestRate: 10, Tenure: math.MinInt/12 - 1, TenureUnit: domain.TenureYears},
		"NaN amount":      {Amount: math.NaN(), InterestRate: 10, Tenure: 12},
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeEMI(in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestComputeEMI_Idempotent(t *testing.T) {
	in := domain.LoanInput{Amount: 345678.9, InterestRate: 11.25, Tenure: 77}
	first, _ := ComputeEMI(in)
	second, _ := ComputeEMI(in)
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestAmortizationSchedule_ClosesAtZero(t *testing.T) {
	start := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	schedule, err := AmortizationSchedule(domain.LoanInput{Amount: 100000, InterestRate: 12, Tenure: 12}, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(schedule))
	}

	var principal, interest float64
	for _, inst := range schedule {
		principal += inst.Principal
		interest += inst.Interest
	}

	if math.Abs(principal-100000) > 0.001 {
		t.Errorf("expected principal to sum to 100000, got %.4f", principal)
	}
	if math.Abs(interest-6618.53) > 0.05 {
		t.Errorf("expected interest 6618.53, got %.4f", interest)
	}
	if last := schedule[len(schedule)-1]; last.Balance != 0 {
		t.Errorf("expected zero closing balance, got %.2f", last.Balance)
	}
	if schedule[0].Payment != 8884.88 {
		t.Errorf("expected first payment 8884.88, got %.2f", schedule[0].Payment)
	}
	if !schedule[0].DueDate.Equal(time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected first due date %s", schedule[0].DueDate)
	}
}

func TestAmortizationSchedule_InvalidInput(t *testing.T) {
	_, err := AmortizationSchedule(domain.LoanInput{Amount: 1000, InterestRate: 5}, time.Now())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAmortizationSchedule_WrappingYears(t *testing.T) {
	// MaxInt/2 + 2 years is 12 months once multiplied with wraparound.
	in := domain.LoanInput{Amount: 1000, InterestRate: 5, Tenure: math.MaxInt/2 + 2, TenureUnit: domain.TenureYears}
	schedule, err := AmortizationSchedule(in, time.Now())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v with %d installments", err, len(schedule))
	}
}

func TestComputeMaturity_ReferenceDeposit(t *testing.T) {
	result, err := ComputeMaturity(domain.DepositInput{Amount: 100000, InterestRate: 6.5, TenureMonths: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MaturityAmount != 106500 {
		t.Errorf("expected 106500, got %.2f", result.MaturityAmount)
	}
	if result.InterestEarned != 6500 {
		t.Errorf("expected 6500 interest, got %.2f", result.InterestEarned)
	}
}

func TestComputeMaturity_FractionalYears(t *testing.T) {
	result, err := ComputeMaturity(domain.DepositInput{Amount: 50000, InterestRate: 6, TenureMonths: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MaturityAmount != 51478 {
		t.Errorf("expected 51478, got %.2f", result.MaturityAmount)
	}
}

// Unlike the EMI, maturity at zero rate is well defined: nothing accrues.
func TestComputeMaturity_ZeroRate(t *testing.T) {
	for _, months := range []int{1, 7, 12, 60} {
		result, err := ComputeMaturity(domain.DepositInput{Amount: 12345.67, InterestRate: 0, TenureMonths: months})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.MaturityAmount != 12345.67 {
			t.Errorf("%d months: expected principal back, got %.2f", months, result.MaturityAmount)
		}
	}
}

func TestComputeMaturity_InvalidInput(t *testing.T) {
	inputs := []domain.DepositInput{
		{Amount: 0, InterestRate: 6, TenureMonths: 12},
		{Amount: 1000, InterestRate: -0.1, TenureMonths: 12},
		{Amount: 1000, InterestRate: 6, TenureMonths: -3},
	}
	for _, in := range inputs {
		if _, err := ComputeMaturity(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}
