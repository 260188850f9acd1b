package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

// roundCurrency rounds to the nearest whole currency unit.
func roundCurrency(value float64) float64 {
	return decimal.NewFromFloat(value).Round(0).InexactFloat64()
}

func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func roundTo1Decimal(value float64) float64 {
	return decimal.NewFromFloat(value).Round(1).InexactFloat64()
}

func validateTerms(amount, rate float64, months int) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0:
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	case amount > MaxLoanAmount:
		return fmt.Errorf("%w: amount exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxLoanAmount)
	case math.IsNaN(rate) || rate < 0:
		return fmt.Errorf("%w: interest rate must not be negative", domain.ErrInvalidInput)
	case rate > MaxInterestRate:
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", domain.ErrInvalidInput, MaxInterestRate)
	case months < MinTermMonths:
		return fmt.Errorf("%w: tenure must be at least %d month", domain.ErrInvalidInput, MinTermMonths)
	case months > MaxTermMonths:
		return fmt.Errorf("%w: tenure exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTermMonths)
	}
	return nil
}

// termMonths converts the tenure to months. Year tenures are bounded before
// the conversion so the multiplication cannot wrap.
func termMonths(input domain.LoanInput) (int, error) {
	switch input.TenureUnit {
	case "", domain.TenureMonths:
	case domain.TenureYears:
		if input.Tenure < 1 {
			return 0, fmt.Errorf("%w: tenure must be at least %d month", domain.ErrInvalidInput, MinTermMonths)
		}
		if input.Tenure > MaxTermMonths/12 {
			return 0, fmt.Errorf("%w: tenure exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTermMonths)
		}
	default:
		return 0, fmt.Errorf("%w: unknown tenure unit %q", domain.ErrInvalidInput, input.TenureUnit)
	}
	return input.TermMonths(), nil
}

// monthlyPayment is the unrounded reducing-balance installment.
// A zero rate splits the principal evenly.
func monthlyPayment(amount, rate float64, months int) float64 {
	if rate == 0 {
		return amount / float64(months)
	}
	r := rate / 1200
	factor := math.Pow(1+r, float64(months))
	return amount * r * factor / (factor - 1)
}

// ComputeEMI returns the equated monthly installment of a loan together with
// the total interest and total payable. Rounding happens once, at the end.
func ComputeEMI(input domain.LoanInput) (domain.LoanResult, error) {
	months, err := termMonths(input)
	if err != nil {
		return domain.LoanResult{}, err
	}
	if err := validateTerms(input.Amount, input.InterestRate, months); err != nil {
		return domain.LoanResult{}, err
	}

	emi := monthlyPayment(input.Amount, input.InterestRate, months)
	total := emi * float64(months)
	interest := total - input.Amount

	result := domain.LoanResult{
		MonthlyPayment: roundCurrency(emi),
		TotalInterest:  roundCurrency(interest),
		TotalPayment:   roundCurrency(total),
	}
	if result.TotalPayment > 0 {
		result.PrincipalPercent = roundTo1Decimal(input.Amount / result.TotalPayment * 100)
		result.InterestPercent = roundTo1Decimal(result.TotalInterest / result.TotalPayment * 100)
	}
	return result, nil
}

// AmortizationSchedule splits every installment into principal and interest on
// the reducing balance. The last installment absorbs rounding drift so the
// balance closes at zero.
func AmortizationSchedule(input domain.LoanInput, start time.Time) ([]domain.Installment, error) {
	months, err := termMonths(input)
	if err != nil {
		return nil, err
	}
	if err := validateTerms(input.Amount, input.InterestRate, months); err != nil {
		return nil, err
	}

	payment := decimal.NewFromFloat(monthlyPayment(input.Amount, input.InterestRate, months)).Round(2)
	rate := decimal.NewFromFloat(input.InterestRate).Div(decimal.NewFromInt(1200))
	remaining := decimal.NewFromFloat(input.Amount)

	schedule := make([]domain.Installment, 0, months)
	for i := 1; i <= months; i++ {
		interest := remaining.Mul(rate).Round(2)
		principal := payment.Sub(interest)
		amount := payment
		if i == months || principal.GreaterThan(remaining) {
			principal = remaining
			amount = principal.Add(interest)
		}
		remaining = remaining.Sub(principal)

		schedule = append(schedule, domain.Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Payment:   amount.InexactFloat64(),
			Principal: principal.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Balance:   remaining.InexactFloat64(),
		})
		if remaining.IsZero() {
			break
		}
	}
	return schedule, nil
}

// ComputeMaturity compounds a fixed deposit annually over a fractional number
// of years. A zero rate returns the principal unchanged.
func ComputeMaturity(input domain.DepositInput) (domain.DepositResult, error) {
	if err := validateTerms(input.Amount, input.InterestRate, input.TenureMonths); err != nil {
		return domain.DepositResult{}, err
	}

	if input.InterestRate == 0 {
		return domain.DepositResult{MaturityAmount: input.Amount}, nil
	}

	maturity := input.Amount * math.Pow(1+input.InterestRate/100, float64(input.TenureMonths)/12)
	rounded := roundCurrency(maturity)

	return domain.DepositResult{
		MaturityAmount: rounded,
		InterestEarned: roundCurrency(rounded - input.Amount),
	}, nil
}
