package services

import (
	"context"
	"testing"
	"time"

	"finly/internal/models"
	"finly/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBudget(t *testing.T, st *memory.Store, userID int64, category, limit string) models.Budget {
	t.Helper()
	b, err := st.UpsertBudget(context.Background(), models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: dec(limit),
		Period:      "monthly",
	})
	require.NoError(t, err)
	return b
}

func seedCategoryExpense(t *testing.T, st *memory.Store, userID int64, category, amount string, date time.Time) {
	t.Helper()
	_, err := st.AppendExpense(context.Background(), models.Expense{
		UserID:   userID,
		Amount:   dec(amount),
		Category: category,
		Kind:     models.ExpenseKindUser,
		Date:     date,
	})
	require.NoError(t, err)
}

func TestComputeAlertsWarningAndExceeded(t *testing.T) {
	st := memory.New()
	seedBudget(t, st, 1, "Food", "10000")
	seedCategoryExpense(t, st, 1, "Food", "8500", time.Now())

	svc := NewBudgetAlertService(st)
	alerts, err := svc.ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	assert.Equal(t, "Food", alerts[0].Category)
	assert.True(t, alerts[0].Spent.Equal(dec("8500")))
	assert.True(t, alerts[0].Percentage.Equal(dec("85")), "got %s", alerts[0].Percentage)
	assert.Equal(t, models.AlertStatusWarning, alerts[0].Status)

	// 2000 more puts the category over the limit.
	seedCategoryExpense(t, st, 1, "Food", "2000", time.Now())
	alerts, err = svc.ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Percentage.Equal(dec("105")), "got %s", alerts[0].Percentage)
	assert.Equal(t, models.AlertStatusExceeded, alerts[0].Status)
}

func TestComputeAlertsThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		spent      string
		wantAlert  bool
		wantStatus string
	}{
		{name: "just below warning", spent: "79.99", wantAlert: false},
		{name: "exactly 80 percent", spent: "80", wantAlert: true, wantStatus: models.AlertStatusWarning},
		{name: "just below exceeded", spent: "99.99", wantAlert: true, wantStatus: models.AlertStatusWarning},
		{name: "exactly 100 percent", spent: "100", wantAlert: true, wantStatus: models.AlertStatusExceeded},
		{name: "over the limit", spent: "145.50", wantAlert: true, wantStatus: models.AlertStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memory.New()
			seedBudget(t, st, 1, "Transport", "100")
			seedCategoryExpense(t, st, 1, "Transport", tt.spent, time.Now())

			alerts, err := NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
			require.NoError(t, err)
			if !tt.wantAlert {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantStatus, alerts[0].Status)
		})
	}
}

func TestComputeAlertsZeroSpendNeverAlerts(t *testing.T) {
	st := memory.New()
	seedBudget(t, st, 1, "Food", "50")

	alerts, err := NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestComputeAlertsIgnoresOtherWindowsAndUsers(t *testing.T) {
	st := memory.New()
	seedBudget(t, st, 1, "Food", "100")

	seedCategoryExpense(t, st, 1, "Food", "500", time.Now().AddDate(0, 0, -45))
	seedCategoryExpense(t, st, 2, "Food", "500", time.Now())
	seedCategoryExpense(t, st, 1, "Transport", "500", time.Now())

	alerts, err := NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// A budget on the "Savings" category tracks only expenses the user
// entered; system-generated goal funding entries do not count.
func TestComputeAlertsIgnoresGoalFundingEntries(t *testing.T) {
	st := memory.New()
	seedBudget(t, st, 1, models.CategorySavings, "100")

	_, err := st.AppendExpense(context.Background(), models.Expense{
		UserID:   1,
		Amount:   dec("5000"),
		Category: models.CategorySavings,
		Kind:     models.ExpenseKindSavings,
		GoalID:   3,
		Date:     time.Now(),
	})
	require.NoError(t, err)

	alerts, err := NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	// A user-entered expense in the same category still alerts.
	seedCategoryExpense(t, st, 1, models.CategorySavings, "90", time.Now())
	alerts, err = NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Spent.Equal(dec("90")))
}

func TestComputeAlertsInvalidBudget(t *testing.T) {
	st := memory.New()
	b, err := st.UpsertBudget(context.Background(), models.Budget{
		UserID:      1,
		Category:    "Food",
		LimitAmount: dec("0"),
		Period:      "monthly",
	})
	require.NoError(t, err)
	require.NotZero(t, b.ID)
	seedCategoryExpense(t, st, 1, "Food", "10", time.Now())

	_, err = NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	var invalid *InvalidBudgetError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Food", invalid.Category)
}

func TestComputeAlertsFractionalPercentage(t *testing.T) {
	st := memory.New()
	seedBudget(t, st, 1, "Bills", "300")
	seedCategoryExpense(t, st, 1, "Bills", "250", time.Now())

	alerts, err := NewBudgetAlertService(st).ComputeAlerts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	// 250/300 rounded at 4 decimal places is 0.8333 -> 83.33%.
	assert.True(t, alerts[0].Percentage.Equal(dec("83.33")), "got %s", alerts[0].Percentage)
	assert.Equal(t, models.AlertStatusWarning, alerts[0].Status)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, time.August, 28, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), periodStart(now, "monthly"))
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), periodStart(now, "weird-label"))
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), periodStart(now, "yearly"))
}
