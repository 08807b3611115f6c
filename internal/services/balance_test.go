package services

import (
	"context"
	"testing"
	"time"

	"finly/internal/models"
	"finly/internal/store/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedIncome(t *testing.T, st *memory.Store, userID int64, amounts ...string) {
	t.Helper()
	for _, a := range amounts {
		_, err := st.AppendIncome(context.Background(), models.Income{
			UserID:   userID,
			Amount:   dec(a),
			Category: "Salary",
			Date:     time.Now(),
		})
		require.NoError(t, err)
	}
}

func seedExpense(t *testing.T, st *memory.Store, userID int64, amounts ...string) {
	t.Helper()
	for _, a := range amounts {
		_, err := st.AppendExpense(context.Background(), models.Expense{
			UserID:   userID,
			Amount:   dec(a),
			Category: "Food",
			Kind:     models.ExpenseKindUser,
			Date:     time.Now(),
		})
		require.NoError(t, err)
	}
}

func TestAvailableBalance(t *testing.T) {
	tests := []struct {
		name     string
		incomes  []string
		expenses []string
		want     string
	}{
		{name: "empty ledgers", want: "0"},
		{name: "income only", incomes: []string{"1200.50", "799.50"}, want: "2000"},
		{name: "income minus expenses", incomes: []string{"50000"}, expenses: []string{"20000", "15000"}, want: "15000"},
		{name: "overdrawn ledger", incomes: []string{"100"}, expenses: []string{"150.25"}, want: "-50.25"},
		{name: "fractional cents accumulate exactly", incomes: []string{"0.10", "0.20"}, expenses: []string{"0.30"}, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memory.New()
			seedIncome(t, st, 1, tt.incomes...)
			seedExpense(t, st, 1, tt.expenses...)

			svc := NewBalanceService(st)
			got, err := svc.AvailableBalance(context.Background(), 1)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestAvailableBalanceIsOrderIndependent(t *testing.T) {
	amounts := []string{"10.01", "0.99", "123.45", "5000", "0.55"}

	forward := memory.New()
	for _, a := range amounts {
		seedIncome(t, forward, 1, a)
	}

	backward := memory.New()
	for i := len(amounts) - 1; i >= 0; i-- {
		seedIncome(t, backward, 1, amounts[i])
	}

	b1, err := NewBalanceService(forward).AvailableBalance(context.Background(), 1)
	require.NoError(t, err)
	b2, err := NewBalanceService(backward).AvailableBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, b1.Equal(b2))
}

func TestAvailableBalanceIsolatedPerUser(t *testing.T) {
	st := memory.New()
	seedIncome(t, st, 1, "100")
	seedIncome(t, st, 2, "999")

	svc := NewBalanceService(st)
	got, err := svc.AvailableBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("100")))
}

func TestHasSufficientBalance(t *testing.T) {
	st := memory.New()
	seedIncome(t, st, 1, "500")
	seedExpense(t, st, 1, "200")
	svc := NewBalanceService(st)

	tests := []struct {
		name    string
		amount  string
		want    bool
		wantErr error
	}{
		{name: "below balance", amount: "299.99", want: true},
		{name: "exactly the balance", amount: "300", want: true},
		{name: "above balance", amount: "300.01", want: false},
		{name: "zero amount", amount: "0", want: true},
		{name: "negative amount is a caller error", amount: "-1", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasSufficientBalance(context.Background(), 1, dec(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Savings funding entries are ordinary expenses as far as the balance is
// concerned.
func TestAvailableBalanceCountsSavingsEntries(t *testing.T) {
	st := memory.New()
	seedIncome(t, st, 1, "1000")

	_, err := st.AppendExpense(context.Background(), models.Expense{
		UserID:   1,
		Amount:   dec("400"),
		Category: models.CategorySavings,
		Kind:     models.ExpenseKindSavings,
		GoalID:   7,
		Date:     time.Now(),
	})
	require.NoError(t, err)

	got, err := NewBalanceService(st).AvailableBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("600")))
}
