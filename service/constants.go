package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per annum
	MaxTermMonths   = 600    // 50 years
	MinTermMonths   = 1

	// Term recommendation scans at most this many terms.
	MaxTermRangeMonths = 120

	DefaultMinDepositAmount  = 1000.0
	DefaultWithdrawalPenalty = 1.0 // percentage points

	MaxScheduleDays = 30
	RiskQuestions   = 5
)

// DepositTenureOptions are the terms offered for new fixed deposits.
var DepositTenureOptions = []int{6, 12, 24, 36, 60}
