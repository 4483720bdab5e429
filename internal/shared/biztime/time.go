// Package biztime centralizes time handling for billing calculations.
// All storage and transport use UTC; implicit Local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Location returns the business timezone used for scheduling.
func Location() *time.Location {
	return time.UTC
}
