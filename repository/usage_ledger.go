package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

// UsageLedger tracks how much an account has transferred per calendar day and
// month. Periods are taken in the location of the supplied time.
type UsageLedger interface {
	Usage(ctx context.Context, accountID string, at time.Time) (daily, monthly decimal.Decimal, err error)
	Record(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) error
	// Reserve adds amount to both periods only if that keeps them within
	// limits. The check and the increment are atomic; a breach returns a
	// *domain.LimitError and changes nothing.
	Reserve(ctx context.Context, accountID string, amount decimal.Decimal, limits domain.Limits, at time.Time) error
	// Release gives back a reservation whose transfer did not go through.
	Release(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) error
}

func dayKey(accountID string, at time.Time) string {
	return accountID + ":" + at.Format("2006-01-02")
}

func monthKey(accountID string, at time.Time) string {
	return accountID + ":" + at.Format("2006-01")
}

// checkLimits reports the first period limit that adding amount would break.
// A zero monthly limit is not checked.
func checkLimits(daily, monthly, amount decimal.Decimal, limits domain.Limits) error {
	if daily.Add(amount).GreaterThan(limits.Daily) {
		return &domain.LimitError{
			Kind:      domain.KindExceedsDailyLimit,
			Remaining: decimal.Max(decimal.Zero, limits.Daily.Sub(daily)),
		}
	}
	if limits.Monthly.IsPositive() && monthly.Add(amount).GreaterThan(limits.Monthly) {
		return &domain.LimitError{
			Kind:      domain.KindExceedsMonthlyLimit,
			Remaining: decimal.Max(decimal.Zero, limits.Monthly.Sub(monthly)),
		}
	}
	return nil
}
