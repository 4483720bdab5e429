package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input    string
		expected BillingInterval
		wantErr  bool
	}{
		{"monthly", IntervalMonthly, false},
		{"MONTHLY", IntervalMonthly, false},
		{"  yearly  ", IntervalYearly, false},
		{"day", IntervalDay, false},
		{"weekly", IntervalWeekly, false},
		{"quarterly", IntervalQuarterly, false},
		{"", "", true},
		{"month", "", true},
		{"biweekly", "", true},
	}

	for _, tt := range tests {
		got, err := ParseInterval(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, got)
	}
}

func TestNextExpiry(t *testing.T) {
	from := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), IntervalDay.NextExpiry(from))
	assert.Equal(t, time.Date(2024, 3, 22, 10, 0, 0, 0, time.UTC), IntervalWeekly.NextExpiry(from))
	assert.Equal(t, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC), IntervalMonthly.NextExpiry(from))
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), IntervalQuarterly.NextExpiry(from))
	assert.Equal(t, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), IntervalYearly.NextExpiry(from))
}

func TestNextExpiry_MonthEndNormalization(t *testing.T) {
	from := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), IntervalMonthly.NextExpiry(from))

	from = time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC), IntervalMonthly.NextExpiry(from))
}

func TestNextExpiry_UnknownFallsBackToMonthly(t *testing.T) {
	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), BillingInterval("bogus").NextExpiry(from))
}
