package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Chart palettes, assigned by slice position.
var expenseColors = []string{"#8b5cf6", "#22c55e", "#f59e0b", "#ef4444", "#3b82f6", "#ec4899", "#14b8a6", "#f97316"}
var incomeColors = []string{"#22c55e", "#3b82f6", "#8b5cf6", "#f59e0b", "#14b8a6", "#ec4899"}

// monthLabels are the Portuguese month abbreviations used on the charts.
var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// Named-range lookup tables. Unknown range names fall back to the defaults
// the frontend has always assumed.
var (
	rangeDays = map[string]int{
		"this-month": 30,
		"30-days":    30,
		"this-year":  365,
		"7d":         7,
		"30d":        30,
		"90d":        90,
	}
	cashFlowMonths = map[string]int{
		"this-month": 1,
		"30-days":    1,
		"this-year":  12,
		"7d":         1,
		"30d":        1,
		"90d":        3,
	}
	trendMonths = map[string]int{
		"this-month": 3,
		"30-days":    3,
		"this-year":  12,
		"7d":         3,
		"30d":        3,
		"90d":        6,
	}
)

const defaultRangeDays = 30
const defaultMonths = 6

// ReportingService computes the aggregation payloads behind the report
// charts. All spending views run over the unified ledger so projected debt
// payments count as spending; the previous-window comparison deliberately
// uses only persisted transactions.
type ReportingService struct {
	BaseService
	unifier portssvc.UnifierSvc
	txnRepo portsrepo.TransactionRepositoryFacade
	now     func() time.Time
}

func NewReportingService(unifier portssvc.UnifierSvc, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.ReportingSvc {
	return &ReportingService{unifier: unifier, txnRepo: txnRepo, now: time.Now}
}

var _ portssvc.ReportingSvc = (*ReportingService)(nil)

func lookupRange(m map[string]int, rangeName string, fallback int) int {
	if v, ok := m[rangeName]; ok {
		return v
	}
	return fallback
}

func roundPct(value, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := value.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return pct
}

// Reports computes the expense KPI block and the category distribution for
// the window ending today.
func (s *ReportingService) Reports(ctx context.Context, rangeName, accountFilter string) (*domain.ReportsResult, error) {
	days := lookupRange(rangeDays, rangeName, defaultRangeDays)
	today := s.now()
	start := today.AddDate(0, 0, -days).Format("2006-01-02")
	end := today.Format("2006-01-02")

	entries, err := s.unifier.UnifiedTransactions(ctx, start, end, accountFilter)
	if err != nil {
		return nil, err
	}

	totalSpent := decimal.Zero
	count := 0
	byCategory := map[string]decimal.Decimal{}
	for _, e := range entries {
		if e.Type != domain.Expense {
			continue
		}
		totalSpent = totalSpent.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		count++
	}

	distribution := buildDistribution(byCategory, totalSpent, expenseColors)

	topCategory := "N/A"
	topValue := decimal.Zero
	if len(distribution) > 0 {
		topCategory = distribution[0].Name
		topValue = distribution[0].Value
	}

	change, err := s.previousWindowChange(ctx, totalSpent, days)
	if err != nil {
		return nil, err
	}

	return &domain.ReportsResult{
		KPI: domain.ReportKPI{
			TotalSpent:       totalSpent,
			TotalSpentChange: change,
			TopCategory:      topCategory,
			TopCategoryValue: topValue,
			TransactionCount: count,
		},
		Distribution: distribution,
	}, nil
}

// previousWindowChange compares real (never projected) expenses against the
// window immediately before the current one. Zero when there was no prior
// spending to compare against.
func (s *ReportingService) previousWindowChange(ctx context.Context, totalSpent decimal.Decimal, days int) (float64, error) {
	today := s.now()
	prevStart := today.AddDate(0, 0, -days*2).Format("2006-01-02")
	prevEnd := today.AddDate(0, 0, -days).Format("2006-01-02")

	prev, err := s.txnRepo.ListTransactionsInRange(ctx, prevStart, prevEnd, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load previous window transactions")
		return 0, fmt.Errorf("failed to compute spending change: %w", err)
	}

	prevTotal := decimal.Zero
	for _, t := range prev {
		// The previous window is half-open; its end date belongs to the
		// current window.
		if t.Type == domain.Expense && t.Date < prevEnd {
			prevTotal = prevTotal.Add(t.Amount)
		}
	}
	if !prevTotal.IsPositive() {
		return 0, nil
	}
	change, _ := totalSpent.Sub(prevTotal).Div(prevTotal).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return change, nil
}

// CashFlow buckets income against expense per trailing month, oldest first,
// ending at the current month.
func (s *ReportingService) CashFlow(ctx context.Context, rangeName, accountFilter string) ([]domain.CashFlowEntry, error) {
	numMonths := lookupRange(cashFlowMonths, rangeName, defaultMonths)

	entries, err := s.rangeEntries(ctx, numMonths, accountFilter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CashFlowEntry, 0, numMonths)
	for idx := numMonths - 1; idx >= 0; idx-- {
		prefix, label := s.monthBucket(idx)

		income := decimal.Zero
		expense := decimal.Zero
		for _, e := range entries {
			if !strings.HasPrefix(e.Date, prefix) {
				continue
			}
			if e.Type == domain.Income {
				income = income.Add(e.Amount)
			} else {
				expense = expense.Add(e.Amount)
			}
		}

		result = append(result, domain.CashFlowEntry{
			Month:   label,
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		})
	}
	return result, nil
}

// SpendingTrends is the monthly expense series with percent change against
// the previous month in the series.
func (s *ReportingService) SpendingTrends(ctx context.Context, rangeName, accountFilter string) ([]domain.TrendEntry, error) {
	numMonths := lookupRange(trendMonths, rangeName, defaultMonths)

	entries, err := s.rangeEntries(ctx, numMonths, accountFilter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TrendEntry, 0, numMonths)
	var prev *decimal.Decimal
	for idx := numMonths - 1; idx >= 0; idx-- {
		prefix, label := s.monthBucket(idx)

		expense := decimal.Zero
		for _, e := range entries {
			if e.Type == domain.Expense && strings.HasPrefix(e.Date, prefix) {
				expense = expense.Add(e.Amount)
			}
		}

		change := 0.0
		if prev != nil && prev.IsPositive() {
			change, _ = expense.Sub(*prev).Div(*prev).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}

		result = append(result, domain.TrendEntry{Month: label, Value: expense, Change: change})
		v := expense
		prev = &v
	}
	return result, nil
}

// IncomeSources is the income-only category distribution for the window.
func (s *ReportingService) IncomeSources(ctx context.Context, rangeName, accountFilter string) ([]domain.CategorySlice, error) {
	days := lookupRange(rangeDays, rangeName, defaultRangeDays)
	today := s.now()
	start := today.AddDate(0, 0, -days).Format("2006-01-02")
	end := today.Format("2006-01-02")

	entries, err := s.unifier.UnifiedTransactions(ctx, start, end, accountFilter)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, e := range entries {
		if e.Type != domain.Income {
			continue
		}
		category := e.Category
		if category == "" {
			category = "Outros"
		}
		total = total.Add(e.Amount)
		byCategory[category] = byCategory[category].Add(e.Amount)
	}

	return buildDistribution(byCategory, total, incomeColors), nil
}

// rangeEntries loads the unified ledger for the trailing numMonths window.
func (s *ReportingService) rangeEntries(ctx context.Context, numMonths int, accountFilter string) ([]domain.UnifiedEntry, error) {
	today := s.now()
	start := today.AddDate(0, 0, -30*numMonths).Format("2006-01-02")
	end := today.Format("2006-01-02")
	return s.unifier.UnifiedTransactions(ctx, start, end, accountFilter)
}

// monthBucket returns the YYYY-MM prefix and chart label for the month idx
// steps of thirty days back from today.
func (s *ReportingService) monthBucket(idx int) (prefix, label string) {
	target := s.now().AddDate(0, 0, -30*idx)
	return target.Format("2006-01"), monthLabels[int(target.Month())-1]
}

// buildDistribution turns per-category totals into chart slices ordered by
// value, largest first, names breaking ties so output is deterministic.
func buildDistribution(byCategory map[string]decimal.Decimal, total decimal.Decimal, colors []string) []domain.CategorySlice {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := byCategory[names[i]], byCategory[names[j]]
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return names[i] < names[j]
	})

	slices := make([]domain.CategorySlice, 0, len(names))
	for i, name := range names {
		value := byCategory[name]
		slices = append(slices, domain.CategorySlice{
			Name:       name,
			Value:      value,
			Percentage: roundPct(value, total),
			Color:      colors[i%len(colors)],
		})
	}
	return slices
}
