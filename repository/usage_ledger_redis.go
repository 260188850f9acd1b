package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

const (
	dailyUsagePrefix   = "bankcalc:usage:daily:"
	monthlyUsagePrefix = "bankcalc:usage:monthly:"
)

// reserveScript checks both period totals and increments them in one step.
// It returns {"ok"} or {"daily"|"monthly", remaining}.
var reserveScript = redis.NewScript(`
local amount = tonumber(ARGV[1])
local daily = tonumber(redis.call('GET', KEYS[1]) or '0')
local monthly = tonumber(redis.call('GET', KEYS[2]) or '0')
local dailyLimit = tonumber(ARGV[2])
local monthlyLimit = tonumber(ARGV[3])

if daily + amount > dailyLimit then
	return {'daily', tostring(math.max(0, dailyLimit - daily))}
end
if monthlyLimit > 0 and monthly + amount > monthlyLimit then
	return {'monthly', tostring(math.max(0, monthlyLimit - monthly))}
end

redis.call('INCRBYFLOAT', KEYS[1], ARGV[1])
redis.call('EXPIREAT', KEYS[1], ARGV[4])
redis.call('INCRBYFLOAT', KEYS[2], ARGV[1])
redis.call('EXPIREAT', KEYS[2], ARGV[5])
return {'ok'}
`)

// RedisUsageLedger keeps usage counters in Redis. Counters expire once their
// period has passed.
type RedisUsageLedger struct {
	client *redis.Client
}

func NewRedisUsageLedger(client *redis.Client) *RedisUsageLedger {
	return &RedisUsageLedger{client: client}
}

func (l *RedisUsageLedger) Usage(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, decimal.Decimal, error) {
	vals, err := l.client.MGet(ctx,
		dailyUsagePrefix+dayKey(accountID, at),
		monthlyUsagePrefix+monthKey(accountID, at),
	).Result()
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("read usage: %w", err)
	}

	daily, err := parseCounter(vals[0])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	monthly, err := parseCounter(vals[1])
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return daily, monthly, nil
}

// periodEnds returns when the day and the month containing at end.
func periodEnds(at time.Time) (dayEnd, monthEnd time.Time) {
	y, m, d := at.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, at.Location()), time.Date(y, m+1, 1, 0, 0, 0, 0, at.Location())
}

func (l *RedisUsageLedger) Record(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) error {
	dk := dailyUsagePrefix + dayKey(accountID, at)
	mk := monthlyUsagePrefix + monthKey(accountID, at)
	dayEnd, monthEnd := periodEnds(at)

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrByFloat(ctx, dk, amount.InexactFloat64())
		pipe.ExpireAt(ctx, dk, dayEnd)
		pipe.IncrByFloat(ctx, mk, amount.InexactFloat64())
		pipe.ExpireAt(ctx, mk, monthEnd)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

func (l *RedisUsageLedger) Reserve(ctx context.Context, accountID string, amount decimal.Decimal, limits domain.Limits, at time.Time) error {
	dayEnd, monthEnd := periodEnds(at)

	res, err := reserveScript.Run(ctx, l.client,
		[]string{dailyUsagePrefix + dayKey(accountID, at), monthlyUsagePrefix + monthKey(accountID, at)},
		amount.String(), limits.Daily.String(), limits.Monthly.String(), dayEnd.Unix(), monthEnd.Unix(),
	).StringSlice()
	if err != nil {
		return fmt.Errorf("reserve usage: %w", err)
	}
	if len(res) == 0 {
		return errors.New("reserve usage: empty script reply")
	}

	switch res[0] {
	case "ok":
		return nil
	case "daily", "monthly":
		if len(res) < 2 {
			return errors.New("reserve usage: malformed script reply")
		}
		remaining, err := decimal.NewFromString(res[1])
		if err != nil {
			return fmt.Errorf("reserve usage: %w", err)
		}
		kind := domain.KindExceedsDailyLimit
		if res[0] == "monthly" {
			kind = domain.KindExceedsMonthlyLimit
		}
		return &domain.LimitError{Kind: kind, Remaining: remaining}
	}
	return fmt.Errorf("reserve usage: unexpected reply %q", res[0])
}

func (l *RedisUsageLedger) Release(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) error {
	neg := amount.Neg().InexactFloat64()
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrByFloat(ctx, dailyUsagePrefix+dayKey(accountID, at), neg)
		pipe.IncrByFloat(ctx, monthlyUsagePrefix+monthKey(accountID, at), neg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("release usage: %w", err)
	}
	return nil
}

func parseCounter(v interface{}) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	s, ok := v.(string)
	if !ok {
		return decimal.Zero, errors.New("unexpected usage counter type")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse usage counter: %w", err)
	}
	return d, nil
}
