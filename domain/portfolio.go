package domain

type Holding struct {
	Name           string  `json:"name"`
	InvestedAmount float64 `json:"invested_amount"`
	CurrentValue   float64 `json:"current_value"`
}

type PortfolioSummary struct {
	TotalInvested  float64 `json:"total_invested"`
	TotalCurrent   float64 `json:"total_current"`
	Returns        float64 `json:"returns"`
	ReturnsPercent float64 `json:"returns_percent"`
}

type RiskProfile string

const (
	Conservative RiskProfile = "Conservative"
	Moderate     RiskProfile = "Moderate"
	Aggressive   RiskProfile = "Aggressive"
)

type RiskAssessment struct {
	AverageScore float64     `json:"average_score"`
	Profile      RiskProfile `json:"profile"`
}
