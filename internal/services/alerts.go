package services

import (
	"context"
	"strings"
	"time"

	"finly/internal/models"
	"finly/internal/store"

	"github.com/shopspring/decimal"
)

var (
	warnThreshold   = decimal.NewFromInt(80)
	exceedThreshold = decimal.NewFromInt(100)
	hundred         = decimal.NewFromInt(100)
)

// BudgetAlertService classifies per-category spend against budget limits.
// Read-only: it re-scans the expense ledger on every call.
type BudgetAlertService struct {
	store store.Store
}

func NewBudgetAlertService(st store.Store) *BudgetAlertService {
	return &BudgetAlertService{store: st}
}

// ComputeAlerts sums each budget's category spend inside the current
// period window and emits an alert when it reaches 80% of the limit,
// EXCEEDED at 100%. Zero-spend categories never alert. Goal funding
// entries are system-generated and excluded, so a budget on the "Savings"
// category only tracks expenses the user entered themselves.
func (s *BudgetAlertService) ComputeAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	budgets, err := s.store.BudgetsByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("fetch budgets", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	expenses, err := s.store.ExpensesByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("fetch expenses", err)
	}

	now := time.Now()
	var alerts []models.Alert
	for _, b := range budgets {
		if b.LimitAmount.Sign() <= 0 {
			return nil, &InvalidBudgetError{Category: b.Category, Limit: b.LimitAmount}
		}

		start := periodStart(now, b.Period)
		spent := decimal.Zero
		for _, e := range expenses {
			if e.Kind != models.ExpenseKindUser {
				continue
			}
			if !strings.EqualFold(e.Category, b.Category) {
				continue
			}
			if e.Date.Before(start) {
				continue
			}
			spent = spent.Add(e.Amount)
		}

		if spent.Sign() == 0 {
			continue
		}

		percentage := spent.DivRound(b.LimitAmount, 4).Mul(hundred)
		if percentage.LessThan(warnThreshold) {
			continue
		}

		status := models.AlertStatusWarning
		if percentage.GreaterThanOrEqual(exceedThreshold) {
			status = models.AlertStatusExceeded
		}
		alerts = append(alerts, models.Alert{
			Category:   b.Category,
			Spent:      spent,
			Limit:      b.LimitAmount,
			Percentage: percentage,
			Status:     status,
		})
	}
	return alerts, nil
}

// periodStart returns the start of the current window for a budget
// period label. Monthly is the concrete window; yearly is supported for
// annual budgets, and anything else falls back to monthly.
func periodStart(now time.Time, period string) time.Time {
	switch strings.ToLower(period) {
	case "yearly":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}
