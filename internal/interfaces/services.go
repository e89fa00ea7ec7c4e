package interfaces

import (
	"context"

	"github.com/bobmcallan/worth/internal/models"
)

// MissingHistoryPolicy controls what account views report for an account
// with no snapshots at all. The policy is an explicit parameter so both
// branches are testable rather than a silent default buried in logic.
type MissingHistoryPolicy string

const (
	// MissingHistoryDefaults substitutes today for the first/latest
	// snapshot dates and 0 for the latest balance (the original behavior).
	MissingHistoryDefaults MissingHistoryPolicy = "defaults"

	// MissingHistoryExplicit leaves the snapshot dates empty so callers
	// can distinguish "no data yet" from "balance recorded today".
	MissingHistoryExplicit MissingHistoryPolicy = "explicit"
)

// LedgerService exposes per-account operations: listings with activity
// windows, raw snapshots, snapshot writes, and balance-over-time series.
type LedgerService interface {
	ListAccounts(ctx context.Context) ([]*models.AccountView, error)
	GetAccount(ctx context.Context, id string) (*models.AccountView, error)
	ListSnapshots(ctx context.Context, id string) ([]*models.Snapshot, error)
	UpsertSnapshot(ctx context.Context, id, date string, balanceMinor int64) (*models.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id, date string) error
	BalanceOverTime(ctx context.Context, id string, period models.BalancePeriod) ([]models.BalancePoint, error)
}

// DashboardService exposes cross-account aggregates: the net worth
// summary, the aggregated balance series, and its chart rendering.
type DashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	BalanceOverTime(ctx context.Context, period models.BalancePeriod) ([]models.BalancePoint, error)
	RenderChart(ctx context.Context, period models.BalancePeriod) ([]byte, error)
}
