package services

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
)

// UnifierSvc produces the unified (real + projected) transaction view for a
// date range. accountFilter is either "all" or a specific account id; for a
// specific account no projected entries are ever returned.
type UnifierSvc interface {
	UnifiedTransactions(ctx context.Context, startDate, endDate, accountFilter string) ([]domain.UnifiedEntry, error)
}

// ReportingSvc defines the aggregation operations. rangeName is one of the
// named ranges the frontend sends ("7d", "30d", "90d", "this-month",
// "30-days", "this-year"); unknown names fall back to defaults. Every
// operation treats an empty transaction set as valid input and returns
// zero-filled output.
type ReportingSvc interface {
	// Reports computes the expense KPI block and category distribution.
	Reports(ctx context.Context, rangeName, accountFilter string) (*domain.ReportsResult, error)

	// CashFlow buckets income vs expense for the trailing months of the range,
	// in chronological order ending at the current month.
	CashFlow(ctx context.Context, rangeName, accountFilter string) ([]domain.CashFlowEntry, error)

	// SpendingTrends is the monthly expense series with month-over-month change.
	SpendingTrends(ctx context.Context, rangeName, accountFilter string) ([]domain.TrendEntry, error)

	// IncomeSources is the income-only category distribution.
	IncomeSources(ctx context.Context, rangeName, accountFilter string) ([]domain.CategorySlice, error)
}
