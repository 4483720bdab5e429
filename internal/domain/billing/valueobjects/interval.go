package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

// BillingInterval is the canonical billing period vocabulary. The same set is
// used on the purchase-confirmation path and the renewal path; there is no
// second short-form vocabulary.
type BillingInterval string

const (
	IntervalDay       BillingInterval = "day"
	IntervalWeekly    BillingInterval = "weekly"
	IntervalMonthly   BillingInterval = "monthly"
	IntervalQuarterly BillingInterval = "quarterly"
	IntervalYearly    BillingInterval = "yearly"
)

var ValidIntervals = map[BillingInterval]bool{
	IntervalDay:       true,
	IntervalWeekly:    true,
	IntervalMonthly:   true,
	IntervalQuarterly: true,
	IntervalYearly:    true,
}

// ParseInterval normalizes and validates an interval string.
func ParseInterval(value string) (BillingInterval, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	interval := BillingInterval(normalized)

	if normalized == "" {
		return "", fmt.Errorf("billing interval cannot be empty")
	}

	if !ValidIntervals[interval] {
		return "", fmt.Errorf("invalid billing interval: %s", value)
	}

	return interval, nil
}

func (b BillingInterval) String() string {
	return string(b)
}

func (b BillingInterval) IsValid() bool {
	return ValidIntervals[b]
}

// NextExpiry returns the expiry for a period starting at from. Calendar
// intervals use time.AddDate, which normalizes month-end overflow forward
// (2024-01-31 plus one month is 2024-03-02). Unknown intervals fall back to
// one month.
func (b BillingInterval) NextExpiry(from time.Time) time.Time {
	switch b {
	case IntervalDay:
		return from.AddDate(0, 0, 1)
	case IntervalWeekly:
		return from.AddDate(0, 0, 7)
	case IntervalMonthly:
		return from.AddDate(0, 1, 0)
	case IntervalQuarterly:
		return from.AddDate(0, 3, 0)
	case IntervalYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
