package util

import "time"

// DateOnly strips the time-of-day component, returning midnight UTC of the
// same calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last calendar day of the given month,
// both at midnight UTC. Month is 1-indexed.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
