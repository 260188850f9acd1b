package domain

import "time"

type TenureUnit string

const (
	TenureMonths TenureUnit = "months"
	TenureYears  TenureUnit = "years"
)

type LoanInput struct {
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interest_rate"` // percent per annum
	Tenure       int        `json:"tenure"`
	TenureUnit   TenureUnit `json:"tenure_unit,omitempty"` // months when empty
}

// TermMonths converts the tenure to months.
func (in LoanInput) TermMonths() int {
	if in.TenureUnit == TenureYears {
		return in.Tenure * 12
	}
	return in.Tenure
}

type LoanResult struct {
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalInterest    float64 `json:"total_interest"`
	TotalPayment     float64 `json:"total_payment"`
	PrincipalPercent float64 `json:"principal_percent"`
	InterestPercent  float64 `json:"interest_percent"`
}

type Installment struct {
	Number    int       `json:"number"`
	DueDate   time.Time `json:"due_date"`
	Payment   float64   `json:"payment"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Balance   float64   `json:"balance"`
}
