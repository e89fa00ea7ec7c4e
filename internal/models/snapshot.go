package models

import "time"

// Snapshot is a single recorded (date, balance) observation for an account.
// Storage enforces at most one snapshot per (account, date).
type Snapshot struct {
	AccountID    string    `json:"account_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	BalanceMinor int64     `json:"balance_minor"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityPeriod names a trailing activity window on an account series.
type ActivityPeriod string

const (
	Activity1W ActivityPeriod = "1W"
	Activity1M ActivityPeriod = "1M"
	Activity3M ActivityPeriod = "3M"
	Activity6M ActivityPeriod = "6M"
)

// ActivityPeriods returns the activity windows shortest-first.
func ActivityPeriods() []ActivityPeriod {
	return []ActivityPeriod{Activity1W, Activity1M, Activity3M, Activity6M}
}

// Days returns the window length in days. The longest window (6M, 180
// days) is the full series length; shorter windows are suffixes of it.
func (p ActivityPeriod) Days() int {
	switch p {
	case Activity1W:
		return 7
	case Activity1M:
		return 30
	case Activity3M:
		return 90
	case Activity6M:
		return 180
	default:
		return 0
	}
}

// ActivityFullDays is the longest activity window; account series are
// built once at this length and sliced per period.
const ActivityFullDays = 180

// ActivityData pairs a window's daily values with its first-to-last delta.
// A null value means no data existed at or before that day.
type ActivityData struct {
	Values     []*int64 `json:"values"`
	DeltaMinor int64    `json:"delta_minor"`
}

// BalancePeriod names a balance-over-time range.
type BalancePeriod string

const (
	Balance1M  BalancePeriod = "1M"
	Balance6M  BalancePeriod = "6M"
	Balance1Y  BalancePeriod = "1Y"
	BalanceMax BalancePeriod = "MAX"
)

// ParseBalancePeriod validates a period query value.
func ParseBalancePeriod(s string) (BalancePeriod, error) {
	switch BalancePeriod(s) {
	case Balance1M, Balance6M, Balance1Y, BalanceMax:
		return BalancePeriod(s), nil
	}
	return "", NewValidationError("period", s, "must be one of 1M, 6M, 1Y, MAX")
}

// Days returns the period length in days, or ok=false for MAX (whose
// start is the earliest snapshot on record).
func (p BalancePeriod) Days() (days int, ok bool) {
	switch p {
	case Balance1M:
		return 30, true
	case Balance6M:
		return 183, true
	case Balance1Y:
		return 365, true
	default:
		return 0, false
	}
}

// BalancePoint is one day of a dense balance series.
type BalancePoint struct {
	Date         string `json:"date"` // YYYY-MM-DD
	BalanceMinor int64  `json:"balance_minor"`
}

// AllocationSlice is one account-type group of the dashboard allocation.
type AllocationSlice struct {
	AccountType  AccountType `json:"account_type"`
	BalanceMinor int64       `json:"balance_minor"`
}

// DashboardSummary is the top-level net worth summary.
type DashboardSummary struct {
	TotalBalanceMinor    int64             `json:"total_balance_minor"`
	ChangeVsLastMonthPct float64           `json:"change_vs_last_month_pct"`
	MonthlyYieldMinor    int64             `json:"monthly_yield_minor"`
	ActiveAccounts       int               `json:"active_accounts"`
	AllocationByType     []AllocationSlice `json:"allocation_by_type"`
}
