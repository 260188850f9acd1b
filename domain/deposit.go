package domain

import "time"

type DepositInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"` // percent per annum, compounded annually
	TenureMonths int     `json:"tenure_months"`
}

type DepositResult struct {
	MaturityAmount float64 `json:"maturity_amount"`
	InterestEarned float64 `json:"interest_earned"`
}

type DepositQuote struct {
	DepositInput
	DepositResult
	MaturityDate time.Time `json:"maturity_date"`
}

type WithdrawalInput struct {
	DepositInput
	ElapsedMonths int `json:"elapsed_months"`
}

type WithdrawalResult struct {
	PenaltyRate float64 `json:"penalty_rate"`
	ReducedRate float64 `json:"reduced_rate"`
	Amount      float64 `json:"amount"`
}
