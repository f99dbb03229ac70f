package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CumulativePoint is one entry of a cumulative balance series: the running
// total of daily nets up to and including Date. Two transactions on the same
// date contribute to a single point.
type CumulativePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryTotal is the summed amount for one (category, kind) pair within a
// reporting period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Kind     Kind            `json:"kind"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryNet pivots a monthly summary by category: Net = Income - Expense,
// with a missing side contributing zero.
type CategoryNet struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Net      decimal.Decimal `json:"net"`
}

// DashboardMetrics are the headline figures for one month plus the overall
// ledger balance across all dates.
type DashboardMetrics struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Balance  decimal.Decimal `json:"balance"`
}
