package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"finly/internal/models"
	"finly/internal/store"

	"github.com/shopspring/decimal"
)

// AdvisorService produces the keyword-matching advisory texts: category
// auto-suggestion, spending tips, a 50-30-20 budget suggestion and a
// monthly analytics summary. Pure text generation over ledger data; it
// holds no invariants and never writes.
type AdvisorService struct {
	store store.Store
}

func NewAdvisorService(st store.Store) *AdvisorService {
	return &AdvisorService{store: st}
}

var categoryKeywords = map[string][]string{
	"Food": {"restaurant", "cafe", "food", "meal", "grocery", "supermarket",
		"breakfast", "lunch", "dinner", "hotel", "eat", "snack", "pizza"},
	"Transport": {"uber", "taxi", "cab", "bus", "metro", "train",
		"fuel", "petrol", "diesel", "gas", "parking", "toll"},
	"Shopping": {"shop", "mall", "amazon", "clothes", "fashion",
		"shoes", "electronics", "store", "purchase", "buy"},
	"Bills": {"electricity", "water", "internet", "mobile", "recharge",
		"wifi", "broadband", "bill", "utility", "rent", "emi"},
	"Entertainment": {"movie", "cinema", "netflix", "spotify", "game",
		"concert", "show", "theater", "party", "club"},
	"Health": {"doctor", "hospital", "medicine", "pharmacy", "medical",
		"clinic", "health", "gym", "fitness", "yoga"},
	"Education": {"book", "course", "class", "school", "college", "tuition",
		"study", "training", "learning"},
}

// SuggestCategory matches the expense description against known keywords.
func (s *AdvisorService) SuggestCategory(description string) string {
	desc := strings.ToLower(description)
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(desc, kw) {
				return category
			}
		}
	}
	return "Others"
}

type categorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type TipsReport struct {
	Tips          []string        `json:"tips"`
	TotalAnalyzed decimal.Decimal `json:"total_analyzed"`
}

// ExpenseTips looks at the user's heaviest categories and suggests where
// to cut. Funding entries are excluded: committing money to a goal is not
// spending to advise about.
func (s *AdvisorService) ExpenseTips(ctx context.Context, userID int64) (TipsReport, error) {
	byCategory, total, err := s.spendByCategory(ctx, userID)
	if err != nil {
		return TipsReport{}, err
	}

	report := TipsReport{TotalAnalyzed: total}
	if total.Sign() <= 0 {
		report.Tips = balancedSpendTips()
		return report, nil
	}

	top := byCategory
	if len(top) > 3 {
		top = top[:3]
	}

	for _, cs := range top {
		share := cs.Amount.Div(total).Mul(hundred)
		pct := share.StringFixed(1)
		switch {
		case strings.EqualFold(cs.Category, "Food") && share.GreaterThan(decimal.NewFromInt(30)):
			report.Tips = append(report.Tips, fmt.Sprintf(
				"🍽️ Food expenses are high (%s%%). Try meal planning and cooking at home to save about %s/month",
				pct, cs.Amount.Mul(decimal.NewFromFloat(0.3)).StringFixed(0)))
		case strings.EqualFold(cs.Category, "Transport") && share.GreaterThan(decimal.NewFromInt(20)):
			report.Tips = append(report.Tips, fmt.Sprintf(
				"🚗 Transport costs are above average. Consider carpooling or public transport to reduce by %s",
				cs.Amount.Mul(decimal.NewFromFloat(0.25)).StringFixed(0)))
		case strings.EqualFold(cs.Category, "Shopping") && share.GreaterThan(decimal.NewFromInt(25)):
			report.Tips = append(report.Tips,
				"🛍️ Shopping expenses seem high. Set a monthly limit and use wishlists to avoid impulse buying")
		case strings.EqualFold(cs.Category, "Entertainment") && share.GreaterThan(decimal.NewFromInt(15)):
			report.Tips = append(report.Tips,
				"🎬 Entertainment spending is elevated. Consider free alternatives or reduce subscriptions")
		}
	}

	if len(report.Tips) == 0 {
		report.Tips = balancedSpendTips()
	}
	return report, nil
}

func balancedSpendTips() []string {
	return []string{
		"✅ Great job! Your spending looks balanced across categories",
		"💡 Keep tracking your expenses to maintain this healthy pattern",
		"📊 Consider setting aside 20% of income for savings",
	}
}

type BudgetSuggestion struct {
	SuggestedBudget    []categorySpend `json:"suggested_budget"`
	HealthStatus       string          `json:"health_status"`
	Recommendations    []string        `json:"recommendations"`
	PotentialSavings   decimal.Decimal `json:"potential_savings"`
	SavingsTarget      decimal.Decimal `json:"savings_target"`
	CurrentSavingsRate decimal.Decimal `json:"current_savings_rate"`
}

// SuggestBudget applies the 50-30-20 rule to the user's income and
// current spend and grades overall financial health.
func (s *AdvisorService) SuggestBudget(income, expenses decimal.Decimal) (BudgetSuggestion, error) {
	if income.Sign() <= 0 {
		return BudgetSuggestion{}, ErrInvalidAmount
	}

	needs := income.Mul(decimal.NewFromFloat(0.50))
	wants := income.Mul(decimal.NewFromFloat(0.30))
	savings := income.Mul(decimal.NewFromFloat(0.20))

	suggestion := BudgetSuggestion{
		SuggestedBudget: []categorySpend{
			{Category: "Food", Amount: needs.Mul(decimal.NewFromFloat(0.35))},
			{Category: "Transport", Amount: needs.Mul(decimal.NewFromFloat(0.25))},
			{Category: "Bills", Amount: needs.Mul(decimal.NewFromFloat(0.40))},
			{Category: "Shopping", Amount: wants.Mul(decimal.NewFromFloat(0.50))},
			{Category: "Entertainment", Amount: wants.Mul(decimal.NewFromFloat(0.30))},
			{Category: "Health", Amount: wants.Mul(decimal.NewFromFloat(0.20))},
			{Category: "Savings", Amount: savings},
		},
		PotentialSavings:   income.Sub(expenses),
		SavingsTarget:      savings,
		CurrentSavingsRate: income.Sub(expenses).Div(income).Mul(hundred),
	}

	switch {
	case expenses.LessThanOrEqual(income.Mul(decimal.NewFromFloat(0.70))):
		suggestion.HealthStatus = "Excellent"
		suggestion.Recommendations = []string{
			"💚 You're managing finances excellently!",
			"📈 Consider increasing savings to 25-30% of income",
			"💰 Look into investment options for long-term growth",
		}
	case expenses.LessThanOrEqual(income.Mul(decimal.NewFromFloat(0.85))):
		suggestion.HealthStatus = "Good"
		suggestion.Recommendations = []string{
			"💛 Good financial health, but there's room for improvement",
			"💰 Try to reduce discretionary spending by 10%",
			"🎯 Focus on building an emergency fund",
		}
	case expenses.LessThanOrEqual(income):
		suggestion.HealthStatus = "Fair"
		suggestion.Recommendations = []string{
			"🧡 You're spending most of your income",
			"⚠️ Prioritize essential expenses only",
			"📊 Review and cancel unnecessary subscriptions",
		}
	default:
		suggestion.HealthStatus = "Needs Attention"
		suggestion.Recommendations = []string{
			"❤️ You're spending more than you earn!",
			"🚨 Immediate action needed to reduce expenses",
			"🎯 Cut all non-essential spending immediately",
		}
	}
	return suggestion, nil
}

type MonthlyAnalytics struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
	ByCategory    []categorySpend `json:"by_category"`
	Health        string          `json:"health"`
}

// MonthlyAnalytics summarizes the current calendar month.
func (s *AdvisorService) MonthlyAnalytics(ctx context.Context, userID int64) (MonthlyAnalytics, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	incomes, err := s.store.IncomeByUser(ctx, userID)
	if err != nil {
		return MonthlyAnalytics{}, storageErr("fetch incomes", err)
	}
	expenses, err := s.store.ExpensesByUser(ctx, userID)
	if err != nil {
		return MonthlyAnalytics{}, storageErr("fetch expenses", err)
	}

	out := MonthlyAnalytics{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, in := range incomes {
		if !in.Date.Before(start) {
			out.TotalIncome = out.TotalIncome.Add(in.Amount)
		}
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Date.Before(start) {
			continue
		}
		out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
		if e.Kind == models.ExpenseKindUser {
			byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		}
	}

	for category, amount := range byCategory {
		out.ByCategory = append(out.ByCategory, categorySpend{Category: category, Amount: amount})
	}
	sort.Slice(out.ByCategory, func(i, j int) bool {
		return out.ByCategory[i].Amount.GreaterThan(out.ByCategory[j].Amount)
	})

	out.NetSavings = out.TotalIncome.Sub(out.TotalExpenses)
	if out.TotalIncome.Sign() > 0 {
		out.SavingsRate = out.NetSavings.Div(out.TotalIncome).Mul(hundred)
	}

	switch {
	case out.TotalIncome.Sign() == 0:
		out.Health = "No income recorded"
	case out.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(30)):
		out.Health = "Excellent"
	case out.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(15)):
		out.Health = "Good"
	case out.SavingsRate.Sign() >= 0:
		out.Health = "Fair"
	default:
		out.Health = "Needs Attention"
	}
	return out, nil
}

// spendByCategory aggregates user-entered expenses, largest first.
func (s *AdvisorService) spendByCategory(ctx context.Context, userID int64) ([]categorySpend, decimal.Decimal, error) {
	expenses, err := s.store.ExpensesByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, storageErr("fetch expenses", err)
	}

	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, e := range expenses {
		if e.Kind != models.ExpenseKindUser {
			continue
		}
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	out := make([]categorySpend, 0, len(byCategory))
	for category, amount := range byCategory {
		out = append(out, categorySpend{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out, total, nil
}
