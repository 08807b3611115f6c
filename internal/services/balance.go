package services

import (
	"context"

	"finly/internal/store"

	"github.com/shopspring/decimal"
)

// BalanceService derives a user's available balance from the two ledgers.
// There is no stored balance field anywhere: savings commitments are plain
// expense entries, so summing income minus expenses is always the truth.
type BalanceService struct {
	store store.Store
}

func NewBalanceService(st store.Store) *BalanceService {
	return &BalanceService{store: st}
}

// AvailableBalance returns sum of incomes minus sum of expenses for the
// user, in exact decimal arithmetic. Reads the latest committed ledger
// state on every call; nothing is cached.
func (s *BalanceService) AvailableBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return availableBalance(ctx, s.store, userID)
}

// HasSufficientBalance reports whether the user can cover amount. A
// negative amount is a caller error, not an automatic yes.
func (s *BalanceService) HasSufficientBalance(ctx context.Context, userID int64, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, ErrInvalidAmount
	}
	available, err := availableBalance(ctx, s.store, userID)
	if err != nil {
		return false, err
	}
	return available.GreaterThanOrEqual(amount), nil
}

// availableBalance runs against whichever store view the caller holds, so
// the funding engine can re-check inside its own transaction.
func availableBalance(ctx context.Context, st store.Store, userID int64) (decimal.Decimal, error) {
	incomes, err := st.IncomeByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, storageErr("fetch incomes", err)
	}
	totalIncome := decimal.Zero
	for _, in := range incomes {
		totalIncome = totalIncome.Add(in.Amount)
	}

	expenses, err := st.ExpensesByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, storageErr("fetch expenses", err)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	return totalIncome.Sub(totalExpenses), nil
}
