package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AccountFilterAll selects transactions across every account.
const AccountFilterAll = "all"

// dedupTolerance is the amount window inside which a real expense is treated
// as the payment of a projected debt obligation.
var dedupTolerance = decimal.NewFromFloat(0.01)

// UnifierService merges persisted transactions with projected debt payments
// into one ledger view. Projections exist only in memory: a debt that is
// still Pendente or Atrasado and falls due inside the window contributes a
// virtual expense unless a matching real payment is already recorded.
type UnifierService struct {
	BaseService
	txnRepo  portsrepo.TransactionRepositoryFacade
	debtRepo portsrepo.DebtRepositoryFacade
	now      func() time.Time
}

func NewUnifierService(txnRepo portsrepo.TransactionRepositoryFacade, debtRepo portsrepo.DebtRepositoryFacade) portssvc.UnifierSvc {
	return &UnifierService{txnRepo: txnRepo, debtRepo: debtRepo, now: time.Now}
}

var _ portssvc.UnifierSvc = (*UnifierService)(nil)

// UnifiedTransactions returns real entries for the window plus projections
// for unpaid debts due inside it. When accountFilter names a specific
// account no projections are returned: a projection has no account to
// belong to.
func (s *UnifierService) UnifiedTransactions(ctx context.Context, startDate, endDate, accountFilter string) ([]domain.UnifiedEntry, error) {
	accountID := ""
	if accountFilter != AccountFilterAll && accountFilter != "" {
		accountID = accountFilter
	}

	var (
		transactions []domain.Transaction
		debts        []domain.Debt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.txnRepo.ListTransactionsInRange(gctx, startDate, endDate, accountID)
		return err
	})
	if accountID == "" {
		g.Go(func() error {
			var err error
			debts, err = s.debtRepo.ListDebts(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load data for unified view")
		return nil, fmt.Errorf("failed to build unified transactions: %w", err)
	}

	entries := make([]domain.UnifiedEntry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, domain.RealEntry(t))
	}

	if accountID != "" {
		return entries, nil
	}

	for _, d := range debts {
		if d.DueDate == "" {
			continue
		}

		dueDate := s.resolveDueDate(d.DueDate)
		if dueDate < startDate || dueDate > endDate {
			continue
		}

		amount := d.Monthly
		if !amount.IsPositive() {
			amount = d.Remaining
		}

		if isDebtPaid(d, amount, transactions) {
			continue
		}
		if !d.Projectable() {
			continue
		}

		entries = append(entries, domain.ProjectedEntry(d, dueDate, amount))
	}

	s.LogDebug(ctx, "Unified view built",
		slog.Int("real", len(transactions)),
		slog.Int("total", len(entries)))
	return entries, nil
}

// isDebtPaid reports whether a real expense already covers the obligation:
// same amount within tolerance and either the debt name appears in the
// description or the categories match.
func isDebtPaid(d domain.Debt, amount decimal.Decimal, transactions []domain.Transaction) bool {
	name := strings.ToLower(d.Name)
	for _, t := range transactions {
		if t.Type != domain.Expense {
			continue
		}
		if t.Amount.Sub(amount).Abs().GreaterThanOrEqual(dedupTolerance) {
			continue
		}
		if strings.Contains(strings.ToLower(t.Description), name) || t.Category == d.Category {
			return true
		}
	}
	return false
}

// resolveDueDate normalizes a debt due date to YYYY-MM-DD. Full dates pass
// through (any time suffix stripped); a bare day-of-month resolves against
// the current month, clamped to its last day.
func (s *UnifierService) resolveDueDate(dueDate string) string {
	date, _, _ := strings.Cut(dueDate, "T")
	if _, err := time.Parse("2006-01-02", date); err == nil {
		return date
	}

	day, err := strconv.Atoi(strings.TrimSpace(date))
	if err != nil || day < 1 || day > 31 {
		return date
	}

	now := s.now()
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
}
