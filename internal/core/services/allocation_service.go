package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paycheck split used when the advisory model is unavailable or answers
// with something unusable: essentials / goals / budgets / safety margin.
var fallbackSplit = map[string]decimal.Decimal{
	domain.BucketEssentials:   decimal.NewFromFloat(0.50),
	domain.BucketGoals:        decimal.NewFromFloat(0.20),
	domain.BucketBudgets:      decimal.NewFromFloat(0.25),
	domain.BucketSafetyMargin: decimal.NewFromFloat(0.05),
}

type bucketMeta struct {
	Name  string
	Color string
}

var bucketInfo = map[string]bucketMeta{
	domain.BucketEssentials:   {Name: "Essenciais", Color: "#ef4444"},
	domain.BucketGoals:        {Name: "Metas", Color: "#3b82f6"},
	domain.BucketBudgets:      {Name: "Orçamentos", Color: "#a855f7"},
	domain.BucketSafetyMargin: {Name: "Margem de Segurança", Color: "#eab308"},
}

// bucketOrder fixes how buckets appear in plans and history.
var bucketOrder = []string{domain.BucketEssentials, domain.BucketGoals, domain.BucketBudgets, domain.BucketSafetyMargin}

// Fallback priority scores per manual priority level.
var fallbackPriorityScores = map[domain.BudgetPriority]float64{
	domain.PriorityEssential: 90,
	domain.PriorityHigh:      70,
	domain.PriorityMedium:    50,
	domain.PriorityLow:       30,
}

// AllocationService implements budget auto-allocation and the paycheck
// allocation workflow. The advisory model proposes; every deterministic
// fallback here disposes when it cannot.
type AllocationService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	debtRepo   portsrepo.DebtRepositoryFacade
	goalRepo   portsrepo.GoalRepositoryFacade
	accRepo    portsrepo.AccountRepositoryFacade
	allocRepo  portsrepo.AllocationRepositoryFacade
	advisory   portssvc.AdvisorySvc
	now        func() time.Time
}

func NewAllocationService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	debtRepo portsrepo.DebtRepositoryFacade,
	goalRepo portsrepo.GoalRepositoryFacade,
	accRepo portsrepo.AccountRepositoryFacade,
	allocRepo portsrepo.AllocationRepositoryFacade,
	advisory portssvc.AdvisorySvc,
) portssvc.AllocationSvcFacade {
	return &AllocationService{
		budgetRepo: budgetRepo,
		txnRepo:    txnRepo,
		debtRepo:   debtRepo,
		goalRepo:   goalRepo,
		accRepo:    accRepo,
		allocRepo:  allocRepo,
		advisory:   advisory,
		now:        time.Now,
	}
}

var _ portssvc.AllocationSvcFacade = (*AllocationService)(nil)

// listBudgetsWithSpent loads budgets with Spent recomputed from expense
// transactions.
func (s *AllocationService) listBudgetsWithSpent(ctx context.Context) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	spent, err := s.txnRepo.SumExpensesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spent: %w", err)
	}
	for i := range budgets {
		budgets[i].Spent = spent[budgets[i].Category]
	}
	return budgets, nil
}

// computeNeeds scores each budget's claim on new money: remaining headroom
// weighted by manual priority and by how close the budget is to its limit.
func computeNeeds(budgets []domain.Budget) []domain.BudgetNeed {
	needs := make([]domain.BudgetNeed, 0, len(budgets))
	for _, b := range budgets {
		used := b.PercentageUsed()
		remaining := b.Remaining()

		urgency := 1.0
		if used > 90 {
			urgency = 2.0
		} else if used > 70 {
			urgency = 1.5
		}

		remainingF, _ := remaining.Float64()
		needs = append(needs, domain.BudgetNeed{
			BudgetID:       b.BudgetID,
			Category:       b.Category,
			Priority:       b.Priority,
			CurrentSpent:   b.Spent,
			Limit:          b.Limit,
			Remaining:      remaining,
			PercentageUsed: used,
			NeedScore:      remainingF * b.Priority.Weight() * urgency,
		})
	}

	sort.Slice(needs, func(i, j int) bool {
		if needs[i].NeedScore != needs[j].NeedScore {
			return needs[i].NeedScore > needs[j].NeedScore
		}
		return needs[i].Category < needs[j].Category
	})
	return needs
}

// AutoAllocate distributes availableAmount across budgets. An advisory
// suggestion wins when it is well-formed; otherwise the split is
// proportional to need score and capped at each budget's remaining headroom.
func (s *AllocationService) AutoAllocate(ctx context.Context, availableAmount decimal.Decimal) ([]domain.BudgetAllocation, error) {
	if !availableAmount.IsPositive() {
		return nil, fmt.Errorf("%w: available amount must be positive", apperrors.ErrValidation)
	}

	budgets, err := s.listBudgetsWithSpent(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budgets for auto-allocation")
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, fmt.Errorf("%w: no budgets to allocate to", apperrors.ErrValidation)
	}

	needs := computeNeeds(budgets)

	if allocations := s.advisoryAllocations(ctx, availableAmount, needs); len(allocations) > 0 {
		return allocations, nil
	}

	return proportionalAllocations(availableAmount, needs), nil
}

// advisoryAllocations asks the model to distribute the amount. An empty
// result means the deterministic fallback should run.
func (s *AllocationService) advisoryAllocations(ctx context.Context, amount decimal.Decimal, needs []domain.BudgetNeed) []domain.BudgetAllocation {
	var sb strings.Builder
	for _, n := range needs {
		fmt.Fprintf(&sb, "- ID %s | Categoria: %s | Prioridade: %s | Limite: %s | Gasto: %s | Resta: %s\n",
			n.BudgetID, n.Category, n.Priority, n.Limit, n.CurrentSpent, n.Remaining)
	}

	prompt := fmt.Sprintf(`Atue como um gestor de orçamento. Tenho R$ %.2f extras para distribuir (alocar) nestes orçamentos para cobrir gastos ou aumentar saldo.

Situação dos Orçamentos:
%s
Distribua o valor total de R$ %.2f de forma inteligente. Priorize contas essenciais e as que estão quase estourando.

Retorne APENAS JSON:
{
    "allocations": [
        { "budget_id": (string, id original), "suggested_amount": (float, valor alocado) }
    ]
}`, amount.InexactFloat64(), sb.String(), amount.InexactFloat64())

	result, err := s.advisory.Analyze(ctx, prompt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAdvisoryUnavailable) {
			s.LogDebug(ctx, "Advisory allocation failed, using fallback", slog.String("error", err.Error()))
		}
		return nil
	}

	raw, ok := result["allocations"].([]any)
	if !ok {
		return nil
	}

	suggested := map[string]decimal.Decimal{}
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["budget_id"].(string)
		amt, ok := m["suggested_amount"].(float64)
		if id == "" || !ok {
			continue
		}
		suggested[id] = decimal.NewFromFloat(amt)
	}

	allocations := make([]domain.BudgetAllocation, 0, len(suggested))
	for _, n := range needs {
		amt, ok := suggested[n.BudgetID]
		if !ok {
			continue
		}
		allocations = append(allocations, buildBudgetAllocation(n, amt))
	}
	return allocations
}

// proportionalAllocations splits the amount proportionally to need score,
// never exceeding a budget's remaining headroom.
func proportionalAllocations(amount decimal.Decimal, needs []domain.BudgetNeed) []domain.BudgetAllocation {
	totalScore := 0.0
	for _, n := range needs {
		if n.NeedScore > 0 {
			totalScore += n.NeedScore
		}
	}
	if totalScore <= 0 {
		return []domain.BudgetAllocation{}
	}

	allocations := make([]domain.BudgetAllocation, 0, len(needs))
	for _, n := range needs {
		if n.NeedScore <= 0 {
			continue
		}
		share := amount.Mul(decimal.NewFromFloat(n.NeedScore / totalScore))
		if share.GreaterThan(n.Remaining) {
			share = n.Remaining
		}
		allocations = append(allocations, buildBudgetAllocation(n, share))
	}
	return allocations
}

func buildBudgetAllocation(n domain.BudgetNeed, amount decimal.Decimal) domain.BudgetAllocation {
	amount = amount.Round(2)
	newTotal := n.CurrentSpent.Add(amount)
	newPct := 0.0
	if n.Limit.IsPositive() {
		newPct, _ = newTotal.Div(n.Limit).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	return domain.BudgetAllocation{
		BudgetID:        n.BudgetID,
		Category:        n.Category,
		Priority:        n.Priority,
		SuggestedAmount: amount,
		NewTotal:        newTotal.Round(2),
		NewPercentage:   newPct,
	}
}

// CalculatePriorities ranks budgets by urgency. The advisory ranking wins
// when well-formed; otherwise scores derive from the manual priority level
// with a bump for budgets close to their limit.
func (s *AllocationService) CalculatePriorities(ctx context.Context) ([]domain.PriorityScore, error) {
	budgets, err := s.listBudgetsWithSpent(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budgets for priority ranking")
		return nil, err
	}
	if len(budgets) == 0 {
		return []domain.PriorityScore{}, nil
	}

	debts, err := s.debtRepo.ListDebts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load debts for priority ranking")
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	if scores := s.advisoryPriorities(ctx, budgets, debts); len(scores) > 0 {
		return scores, nil
	}

	scores := make([]domain.PriorityScore, 0, len(budgets))
	for _, b := range budgets {
		score := fallbackPriorityScores[b.Priority]
		if score == 0 {
			score = 50
		}
		if b.Limit.IsPositive() && b.PercentageUsed() > 80 {
			score += 15
		}
		scores = append(scores, domain.PriorityScore{
			BudgetID: b.BudgetID,
			Score:    score,
			Reason:   fmt.Sprintf("Prioridade %s definida manualmente", b.Priority),
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].BudgetID < scores[j].BudgetID
	})
	return scores, nil
}

func (s *AllocationService) advisoryPriorities(ctx context.Context, budgets []domain.Budget, debts []domain.Debt) []domain.PriorityScore {
	var budgetsSummary strings.Builder
	for _, b := range budgets {
		fmt.Fprintf(&budgetsSummary, "- ID %s: %s (Limite: %s, Gasto: %s, Prioridade Manual: %s)\n",
			b.BudgetID, b.Category, b.Limit, b.Spent, b.Priority)
	}

	debtsSummary := "Nenhuma dívida"
	if len(debts) > 0 {
		var sb strings.Builder
		for _, d := range debts {
			fmt.Fprintf(&sb, "- %s: R$ %s restantes, vence %s, Urgente: %t\n", d.Name, d.Remaining, d.DueDate, d.IsUrgent)
		}
		debtsSummary = sb.String()
	}

	prompt := fmt.Sprintf(`Você é um consultor financeiro. Analise os objetivos financeiros do usuário e REORDENE por prioridade.

Critérios de Priorização (em ordem de importância):
1. Dívidas urgentes (primeiro lugar SEMPRE)
2. Necessidades essenciais (moradia, alimentação, saúde)
3. Orçamentos que estão estourando (gasto > 80%% do limite)
4. Metas com prazo próximo
5. Demais itens por prioridade manual do usuário

Orçamentos do Usuário:
%s
Dívidas:
%s
Para CADA orçamento, retorne um score de 0 a 100 (100 = mais prioritário) e uma razão curta.

Retorne APENAS JSON:
{
    "priorities": [
        {
            "budget_id": (string),
            "score": (0-100),
            "reason": "Explicação curta de por que essa posição"
        }
    ]
}
Ordene do mais prioritário (score maior) para o menos.`, budgetsSummary.String(), debtsSummary)

	result, err := s.advisory.Analyze(ctx, prompt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAdvisoryUnavailable) {
			s.LogDebug(ctx, "Advisory priority ranking failed, using fallback", slog.String("error", err.Error()))
		}
		return nil
	}

	raw, ok := result["priorities"].([]any)
	if !ok {
		return nil
	}

	known := map[string]bool{}
	for _, b := range budgets {
		known[b.BudgetID] = true
	}

	scores := make([]domain.PriorityScore, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["budget_id"].(string)
		if !known[id] {
			continue
		}
		score, _ := m["score"].(float64)
		reason, _ := m["reason"].(string)
		scores = append(scores, domain.PriorityScore{BudgetID: id, Score: score, Reason: reason})
	}
	return scores
}

// SuggestAllocation builds a paycheck split, persists it as a draft and
// returns the full plan. Advisory output is used when it carries categories;
// otherwise the split is 50/20/25/5 across essentials, goals, budgets and
// safety margin.
func (s *AllocationService) SuggestAllocation(ctx context.Context, amount decimal.Decimal, paycheckDate string) (*domain.AllocationPlan, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: paycheck amount must be positive", apperrors.ErrValidation)
	}

	debts, err := s.debtRepo.ListDebts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load debts for allocation suggestion")
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	goals, err := s.goalRepo.ListGoals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load goals for allocation suggestion")
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	budgets, err := s.listBudgetsWithSpent(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budgets for allocation suggestion")
		return nil, err
	}

	s.sortDebtsByUrgency(debts)
	s.sortGoalsByDeadline(goals)

	plan := s.advisoryPlan(ctx, amount, debts, goals, budgets)
	if plan == nil {
		plan = s.fallbackPlan(amount, debts, goals, budgets)
	}

	now := time.Now()
	allocation := domain.PaycheckAllocation{
		AllocationID:   uuid.NewString(),
		PaycheckDate:   paycheckDate,
		PaycheckAmount: amount,
		Status:         domain.AllocationDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	planCategories, items := finalizePlan(allocation.AllocationID, amount, plan.buckets)

	if err := s.allocRepo.SaveAllocation(ctx, allocation, items); err != nil {
		s.LogError(ctx, err, "Failed to persist allocation draft", slog.String("allocation_id", allocation.AllocationID))
		return nil, err
	}

	s.LogInfo(ctx, "Allocation draft created",
		slog.String("allocation_id", allocation.AllocationID),
		slog.String("amount", amount.String()))

	return &domain.AllocationPlan{
		Allocation: allocation,
		Categories: planCategories,
		Insights:   plan.insights,
	}, nil
}

// proposedPlan carries the pre-persistence shape of a paycheck split.
type proposedPlan struct {
	buckets  map[string][]domain.AllocationItem
	insights []string
}

func (s *AllocationService) sortDebtsByUrgency(debts []domain.Debt) {
	now := s.now()
	key := func(d domain.Debt) float64 {
		due, err := time.Parse("2006-01-02", d.DueDate)
		if err != nil {
			return 999
		}
		daysUntil := due.Sub(now).Hours() / 24
		urgency := 0.0
		if d.IsUrgent {
			urgency = 1000
		}
		return -urgency + daysUntil
	}
	sort.SliceStable(debts, func(i, j int) bool { return key(debts[i]) < key(debts[j]) })
}

func (s *AllocationService) sortGoalsByDeadline(goals []domain.Goal) {
	now := s.now()
	key := func(g domain.Goal) float64 {
		deadline, err := time.Parse("2006-01-02", g.Deadline)
		if err != nil {
			return 999
		}
		daysUntil := deadline.Sub(now).Hours() / 24
		return daysUntil * (1 - g.Progress())
	}
	sort.SliceStable(goals, func(i, j int) bool { return key(goals[i]) < key(goals[j]) })
}

// advisoryPlan asks the model for a paycheck split. nil means fallback.
func (s *AllocationService) advisoryPlan(ctx context.Context, amount decimal.Decimal, debts []domain.Debt, goals []domain.Goal, budgets []domain.Budget) *proposedPlan {
	var debtsInfo strings.Builder
	for i, d := range debts {
		if i >= 10 {
			break
		}
		status := string(d.Status)
		if d.IsUrgent {
			status = "URGENTE"
		}
		fmt.Fprintf(&debtsInfo, "- %s: R$ %.2f/mês, vence dia %s, %s\n", d.Name, d.Monthly.InexactFloat64(), d.DueDate, status)
	}
	if debtsInfo.Len() == 0 {
		debtsInfo.WriteString("- Nenhuma dívida cadastrada\n")
	}

	var goalsInfo strings.Builder
	for i, g := range goals {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&goalsInfo, "- %s: %.0f%% completa, faltam R$ %.2f, prazo %s\n",
			g.Name, g.Progress()*100, g.TargetAmount.Sub(g.CurrentAmount).InexactFloat64(), g.Deadline)
	}
	if goalsInfo.Len() == 0 {
		goalsInfo.WriteString("- Nenhuma meta cadastrada\n")
	}

	var budgetsInfo strings.Builder
	for i, b := range budgets {
		if i >= 8 {
			break
		}
		fmt.Fprintf(&budgetsInfo, "- %s: limite R$ %.2f, gasto atual R$ %.2f\n",
			b.Category, b.Limit.InexactFloat64(), b.Spent.InexactFloat64())
	}
	if budgetsInfo.Len() == 0 {
		budgetsInfo.WriteString("- Nenhum orçamento cadastrado\n")
	}

	prompt := fmt.Sprintf(`Analise a situação financeira e sugira como alocar o salário quinzenal de R$ %.2f.

DÍVIDAS E CONTAS (pagar primeiro):
%s
METAS DE POUPANÇA:
%s
ORÇAMENTOS VARIÁVEIS:
%s
Regras de alocação:
1. Priorize dívidas urgentes e com vencimento nos próximos 15 dias
2. Reserve 5-15%% para margem de segurança (imprevistos)
3. Contribua para metas atrasadas ou próximas do prazo
4. Distribua o restante proporcionalmente entre orçamentos

Retorne APENAS JSON nesta estrutura:
{
    "categories": [
        {"id": "essentials", "items": [{"name": "Nome da despesa", "amount": 0.00, "reference_type": "debt", "reference_id": null}]},
        {"id": "goals", "items": [{"name": "Nome da meta", "amount": 0.00, "reference_type": "goal", "reference_id": null}]},
        {"id": "budgets", "items": [{"name": "Categoria", "amount": 0.00, "reference_type": "budget", "reference_id": null}]},
        {"id": "safety_margin", "items": [{"name": "Reserva para imprevistos", "amount": 0.00}]}
    ],
    "insights": ["Insight 1", "Insight 2", "Insight 3"]
}`, amount.InexactFloat64(), debtsInfo.String(), goalsInfo.String(), budgetsInfo.String())

	result, err := s.advisory.Analyze(ctx, prompt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAdvisoryUnavailable) {
			s.LogDebug(ctx, "Advisory paycheck split failed, using fallback", slog.String("error", err.Error()))
		}
		return nil
	}

	rawCategories, ok := result["categories"].([]any)
	if !ok {
		return nil
	}

	buckets := map[string][]domain.AllocationItem{}
	total := 0
	for _, rawCat := range rawCategories {
		cat, ok := rawCat.(map[string]any)
		if !ok {
			continue
		}
		bucket, _ := cat["id"].(string)
		if _, known := bucketInfo[bucket]; !known {
			continue
		}
		rawItems, _ := cat["items"].([]any)
		for _, rawItem := range rawItems {
			item, ok := rawItem.(map[string]any)
			if !ok {
				continue
			}
			name, _ := item["name"].(string)
			amt, ok := item["amount"].(float64)
			if name == "" || !ok || amt <= 0 {
				continue
			}
			var refID *string
			if id, ok := item["reference_id"].(string); ok && id != "" {
				refID = &id
			}
			refType, _ := item["reference_type"].(string)
			buckets[bucket] = append(buckets[bucket], domain.AllocationItem{
				Name:          name,
				Amount:        decimal.NewFromFloat(amt).Round(2),
				ReferenceID:   refID,
				ReferenceType: refType,
			})
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var insights []string
	if rawInsights, ok := result["insights"].([]any); ok {
		for _, raw := range rawInsights {
			if text, ok := raw.(string); ok && text != "" {
				insights = append(insights, text)
			}
		}
	}

	return &proposedPlan{buckets: buckets, insights: insights}
}

// fallbackPlan is the deterministic 50/20/25/5 split: essentials over the
// four most urgent debts proportional to their monthly amount, goals over
// the two most pressing goals, budgets evenly over up to four budgets, plus
// the safety margin. Placeholders fill any empty bucket.
func (s *AllocationService) fallbackPlan(amount decimal.Decimal, debts []domain.Debt, goals []domain.Goal, budgets []domain.Budget) *proposedPlan {
	buckets := map[string][]domain.AllocationItem{}

	essentialsAmt := amount.Mul(fallbackSplit[domain.BucketEssentials])
	goalsAmt := amount.Mul(fallbackSplit[domain.BucketGoals])
	budgetsAmt := amount.Mul(fallbackSplit[domain.BucketBudgets])
	safetyAmt := amount.Mul(fallbackSplit[domain.BucketSafetyMargin])

	topDebts := debts
	if len(topDebts) > 4 {
		topDebts = topDebts[:4]
	}
	if len(topDebts) > 0 {
		debtTotal := decimal.Zero
		for _, d := range topDebts {
			debtTotal = debtTotal.Add(d.Monthly)
		}
		for _, d := range topDebts {
			var share decimal.Decimal
			if debtTotal.IsPositive() {
				share = d.Monthly.Div(debtTotal).Mul(essentialsAmt)
			} else {
				share = essentialsAmt.Div(decimal.NewFromInt(int64(len(topDebts))))
			}
			refID := d.DebtID
			buckets[domain.BucketEssentials] = append(buckets[domain.BucketEssentials], domain.AllocationItem{
				Name:          d.Name,
				Amount:        share.Round(2),
				ReferenceID:   &refID,
				ReferenceType: domain.RefDebt,
			})
		}
	} else {
		buckets[domain.BucketEssentials] = []domain.AllocationItem{{Name: "Custos fixos gerais", Amount: essentialsAmt.Round(2)}}
	}

	topGoals := goals
	if len(topGoals) > 2 {
		topGoals = topGoals[:2]
	}
	if len(topGoals) > 0 {
		share := goalsAmt.Div(decimal.NewFromInt(int64(len(topGoals))))
		for _, g := range topGoals {
			refID := g.GoalID
			buckets[domain.BucketGoals] = append(buckets[domain.BucketGoals], domain.AllocationItem{
				Name:          g.Name,
				Amount:        share.Round(2),
				ReferenceID:   &refID,
				ReferenceType: domain.RefGoal,
			})
		}
	} else {
		buckets[domain.BucketGoals] = []domain.AllocationItem{{Name: "Reserva de emergência", Amount: goalsAmt.Round(2)}}
	}

	topBudgets := budgets
	if len(topBudgets) > 4 {
		topBudgets = topBudgets[:4]
	}
	if len(topBudgets) > 0 {
		share := budgetsAmt.Div(decimal.NewFromInt(int64(len(topBudgets))))
		for _, b := range topBudgets {
			refID := b.BudgetID
			buckets[domain.BucketBudgets] = append(buckets[domain.BucketBudgets], domain.AllocationItem{
				Name:          b.Category,
				Amount:        share.Round(2),
				ReferenceID:   &refID,
				ReferenceType: domain.RefBudget,
			})
		}
	} else {
		buckets[domain.BucketBudgets] = []domain.AllocationItem{{Name: "Gastos variáveis", Amount: budgetsAmt.Round(2)}}
	}

	buckets[domain.BucketSafetyMargin] = []domain.AllocationItem{{Name: "Reserva para imprevistos", Amount: safetyAmt.Round(2)}}

	thirdInsight := "Alocação calculada automaticamente"
	if len(debts) == 0 {
		thirdInsight = "Configure o provedor de análise para sugestões personalizadas"
	}
	insights := []string{
		"Distribuição baseada no método 50/30/20 adaptado",
		fmt.Sprintf("Você tem %d dívidas cadastradas no sistema", len(debts)),
		thirdInsight,
	}

	return &proposedPlan{buckets: buckets, insights: insights}
}

// finalizePlan stamps ids and percentages on every item and folds the
// buckets into their presentation order.
func finalizePlan(allocationID string, amount decimal.Decimal, buckets map[string][]domain.AllocationItem) ([]domain.AllocationCategory, []domain.AllocationItem) {
	categories := make([]domain.AllocationCategory, 0, len(bucketOrder))
	allItems := make([]domain.AllocationItem, 0)

	for _, bucket := range bucketOrder {
		items := buckets[bucket]
		if len(items) == 0 {
			continue
		}
		meta := bucketInfo[bucket]

		bucketTotal := decimal.Zero
		for i := range items {
			items[i].ItemID = uuid.NewString()
			items[i].AllocationID = allocationID
			items[i].Category = bucket
			items[i].Percentage = roundPct(items[i].Amount, amount)
			bucketTotal = bucketTotal.Add(items[i].Amount)
		}

		categories = append(categories, domain.AllocationCategory{
			ID:         bucket,
			Name:       meta.Name,
			Color:      meta.Color,
			Amount:     bucketTotal.Round(2),
			Percentage: roundPct(bucketTotal, amount),
			Items:      items,
		})
		allItems = append(allItems, items...)
	}

	return categories, allItems
}

// ApplyAllocation transitions a draft to applied in one database
// transaction: every non-safety-margin item becomes a completed expense
// against the default account, and goal-referencing items increment their
// goal. Reapplying fails with ErrAllocationApplied.
func (s *AllocationService) ApplyAllocation(ctx context.Context, allocationID string) (int, []string, error) {
	allocation, err := s.allocRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return 0, nil, err
	}

	items, err := s.allocRepo.ListAllocationItems(ctx, allocationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load allocation items", slog.String("allocation_id", allocationID))
		return 0, nil, err
	}

	// Default account: the oldest one. Entries stay unlinked when the user
	// has no accounts yet.
	var accountID *string
	accounts, err := s.accRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for allocation apply")
		return 0, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) > 0 {
		accountID = &accounts[0].AccountID
	}

	tx, err := s.allocRepo.Begin(ctx)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = s.allocRepo.Rollback(ctx, tx) }()

	if err := s.allocRepo.MarkAppliedInTx(ctx, tx, allocationID); err != nil {
		return 0, nil, err
	}

	now := time.Now()
	created := 0
	totalDebited := decimal.Zero
	goalsUpdated := make([]string, 0)

	for _, item := range items {
		if item.Category != domain.BucketSafetyMargin {
			txn := domain.Transaction{
				TransactionID: uuid.NewString(),
				AccountID:     accountID,
				Description:   "Alocação quinzenal: " + item.Name,
				Amount:        item.Amount,
				Type:          domain.Expense,
				Date:          allocation.PaycheckDate,
				Category:      item.Name,
				Status:        domain.StatusCompleted,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
				s.LogError(ctx, err, "Failed to record allocation transaction", slog.String("allocation_id", allocationID))
				return 0, nil, err
			}
			created++
			totalDebited = totalDebited.Add(item.Amount)
		}

		if item.ReferenceType == domain.RefGoal && item.ReferenceID != nil {
			err := s.goalRepo.AddToGoalInTx(ctx, tx, *item.ReferenceID, item.Amount)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					// The goal may have been deleted after the draft was built.
					continue
				}
				s.LogError(ctx, err, "Failed to increment goal from allocation", slog.String("goal_id", *item.ReferenceID))
				return 0, nil, err
			}
			goalsUpdated = append(goalsUpdated, item.Name)
		}
	}

	if accountID != nil && totalDebited.IsPositive() {
		if err := s.accRepo.AdjustBalanceInTx(ctx, tx, *accountID, totalDebited.Neg(), now); err != nil {
			s.LogError(ctx, err, "Failed to debit account for allocation", slog.String("account_id", *accountID))
			return 0, nil, err
		}
	}

	if err := s.allocRepo.Commit(ctx, tx); err != nil {
		return 0, nil, err
	}

	s.LogInfo(ctx, "Allocation applied",
		slog.String("allocation_id", allocationID),
		slog.Int("transactions_created", created),
		slog.Int("goals_updated", len(goalsUpdated)))
	return created, goalsUpdated, nil
}

// History lists past allocations, newest first, with items grouped by bucket.
func (s *AllocationService) History(ctx context.Context) ([]domain.AllocationPlan, error) {
	allocations, err := s.allocRepo.ListAllocations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocations")
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	history := make([]domain.AllocationPlan, 0, len(allocations))
	for _, allocation := range allocations {
		items, err := s.allocRepo.ListAllocationItems(ctx, allocation.AllocationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load allocation items", slog.String("allocation_id", allocation.AllocationID))
			return nil, err
		}

		buckets := map[string][]domain.AllocationItem{}
		for _, item := range items {
			buckets[item.Category] = append(buckets[item.Category], item)
		}

		categories := make([]domain.AllocationCategory, 0, len(buckets))
		for _, bucket := range bucketOrder {
			bucketItems := buckets[bucket]
			if len(bucketItems) == 0 {
				continue
			}
			meta := bucketInfo[bucket]
			total := decimal.Zero
			for _, item := range bucketItems {
				total = total.Add(item.Amount)
			}
			categories = append(categories, domain.AllocationCategory{
				ID:         bucket,
				Name:       meta.Name,
				Color:      meta.Color,
				Amount:     total.Round(2),
				Percentage: roundPct(total, allocation.PaycheckAmount),
				Items:      bucketItems,
			})
		}

		history = append(history, domain.AllocationPlan{
			Allocation: allocation,
			Categories: categories,
		})
	}
	return history, nil
}
