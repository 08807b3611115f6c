package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finly/internal/models"
	"finly/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx context.Context
	st  *Store
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.st = New()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) amount(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	s.Require().NoError(err)
	return d
}

func (s *MemoryStoreSuite) TestIncomeCRUD() {
	in, err := s.st.AppendIncome(s.ctx, models.Income{
		UserID:   1,
		Amount:   s.amount("1200"),
		Category: "Salary",
		Date:     time.Now(),
	})
	s.Require().NoError(err)
	s.NotZero(in.ID)
	s.False(in.CreatedAt.IsZero())

	in.Amount = s.amount("1300")
	updated, err := s.st.UpdateIncome(s.ctx, in)
	s.Require().NoError(err)
	s.True(updated.Amount.Equal(s.amount("1300")))

	list, err := s.st.IncomeByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.NoError(s.st.DeleteIncome(s.ctx, in.ID, 1))
	s.ErrorIs(s.st.DeleteIncome(s.ctx, in.ID, 1), store.ErrNotFound)
}

func (s *MemoryStoreSuite) TestLedgerListsNewestFirst() {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	_, err := s.st.AppendExpense(s.ctx, models.Expense{UserID: 1, Amount: s.amount("10"), Category: "Food", Date: older})
	s.Require().NoError(err)
	_, err = s.st.AppendExpense(s.ctx, models.Expense{UserID: 1, Amount: s.amount("20"), Category: "Food", Date: newer})
	s.Require().NoError(err)

	list, err := s.st.ExpensesByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.True(list[0].Amount.Equal(s.amount("20")))
	s.True(list[1].Amount.Equal(s.amount("10")))
}

func (s *MemoryStoreSuite) TestRowsAreScopedToOwner() {
	in, err := s.st.AppendIncome(s.ctx, models.Income{UserID: 1, Amount: s.amount("100"), Category: "Salary", Date: time.Now()})
	s.Require().NoError(err)

	// Another user cannot touch the row.
	s.ErrorIs(s.st.DeleteIncome(s.ctx, in.ID, 2), store.ErrNotFound)
	in.UserID = 2
	_, err = s.st.UpdateIncome(s.ctx, in)
	s.ErrorIs(err, store.ErrNotFound)

	list, err := s.st.IncomeByUser(s.ctx, 2)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *MemoryStoreSuite) TestGoalFundingEntriesAreImmutable() {
	e, err := s.st.AppendExpense(s.ctx, models.Expense{
		UserID:   1,
		Amount:   s.amount("500"),
		Category: models.CategorySavings,
		Kind:     models.ExpenseKindSavings,
		GoalID:   9,
		Date:     time.Now(),
	})
	s.Require().NoError(err)

	e.Amount = s.amount("1")
	_, err = s.st.UpdateExpense(s.ctx, e)
	s.ErrorIs(err, store.ErrNotFound)
	s.ErrorIs(s.st.DeleteExpense(s.ctx, e.ID, 1), store.ErrNotFound)
}

func (s *MemoryStoreSuite) TestAppendExpenseDefaultsKind() {
	e, err := s.st.AppendExpense(s.ctx, models.Expense{UserID: 1, Amount: s.amount("5"), Category: "Food", Date: time.Now()})
	s.Require().NoError(err)
	s.Equal(models.ExpenseKindUser, e.Kind)
}

func (s *MemoryStoreSuite) TestUpsertBudgetOverwritesByCategory() {
	first, err := s.st.UpsertBudget(s.ctx, models.Budget{UserID: 1, Category: "Food", LimitAmount: s.amount("100"), Period: "monthly"})
	s.Require().NoError(err)

	// Same category in a different case replaces the limit, keeps the id.
	second, err := s.st.UpsertBudget(s.ctx, models.Budget{UserID: 1, Category: "food", LimitAmount: s.amount("250"), Period: "yearly"})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.True(second.LimitAmount.Equal(s.amount("250")))
	s.Equal("yearly", second.Period)

	budgets, err := s.st.BudgetsByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(budgets, 1)

	// A different user gets their own row.
	other, err := s.st.UpsertBudget(s.ctx, models.Budget{UserID: 2, Category: "Food", LimitAmount: s.amount("50"), Period: "monthly"})
	s.Require().NoError(err)
	s.NotEqual(first.ID, other.ID)
}

func (s *MemoryStoreSuite) TestGoalLifecycle() {
	g, err := s.st.UpsertGoal(s.ctx, models.SavingsGoal{UserID: 1, GoalName: "Trip", TargetAmount: s.amount("2000")})
	s.Require().NoError(err)
	s.NotZero(g.ID)

	g.SavedAmount = s.amount("150")
	g, err = s.st.UpsertGoal(s.ctx, g)
	s.Require().NoError(err)

	got, err := s.st.GoalByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(got.SavedAmount.Equal(s.amount("150")))

	s.NoError(s.st.DeleteGoal(s.ctx, g.ID))
	_, err = s.st.GoalByID(s.ctx, g.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *MemoryStoreSuite) TestCreateUserRejectsDuplicates() {
	_, err := s.st.CreateUser(s.ctx, models.User{Username: "ada", Email: "ada@example.com", Password: "x"})
	s.Require().NoError(err)

	_, err = s.st.CreateUser(s.ctx, models.User{Username: "other", Email: "ada@example.com", Password: "x"})
	s.ErrorIs(err, store.ErrDuplicate)
	_, err = s.st.CreateUser(s.ctx, models.User{Username: "ada", Email: "other@example.com", Password: "x"})
	s.ErrorIs(err, store.ErrDuplicate)
}

func (s *MemoryStoreSuite) TestUsersWithBudgets() {
	u1, err := s.st.CreateUser(s.ctx, models.User{Username: "ada", Email: "ada@example.com"})
	s.Require().NoError(err)
	_, err = s.st.CreateUser(s.ctx, models.User{Username: "bob", Email: "bob@example.com"})
	s.Require().NoError(err)

	_, err = s.st.UpsertBudget(s.ctx, models.Budget{UserID: u1.ID, Category: "Food", LimitAmount: s.amount("100"), Period: "monthly"})
	s.Require().NoError(err)

	users, err := s.st.UsersWithBudgets(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(u1.ID, users[0].ID)
}

func (s *MemoryStoreSuite) TestDeleteUserCascades() {
	u, err := s.st.CreateUser(s.ctx, models.User{Username: "ada", Email: "ada@example.com"})
	s.Require().NoError(err)

	_, err = s.st.AppendIncome(s.ctx, models.Income{UserID: u.ID, Amount: s.amount("100"), Category: "Salary", Date: time.Now()})
	s.Require().NoError(err)
	_, err = s.st.AppendExpense(s.ctx, models.Expense{UserID: u.ID, Amount: s.amount("10"), Category: "Food", Date: time.Now()})
	s.Require().NoError(err)
	_, err = s.st.UpsertBudget(s.ctx, models.Budget{UserID: u.ID, Category: "Food", LimitAmount: s.amount("50"), Period: "monthly"})
	s.Require().NoError(err)
	g, err := s.st.UpsertGoal(s.ctx, models.SavingsGoal{UserID: u.ID, GoalName: "Trip"})
	s.Require().NoError(err)

	s.Require().NoError(s.st.DeleteUser(s.ctx, u.ID))

	incomes, err := s.st.IncomeByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Empty(incomes)
	expenses, err := s.st.ExpensesByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Empty(expenses)
	budgets, err := s.st.BudgetsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Empty(budgets)
	_, err = s.st.GoalByID(s.ctx, g.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *MemoryStoreSuite) TestTransactionCommitsAllWrites() {
	err := s.st.InTransaction(s.ctx, func(tx store.Store) error {
		if _, err := tx.AppendExpense(s.ctx, models.Expense{UserID: 1, Amount: s.amount("500"), Category: models.CategorySavings, Kind: models.ExpenseKindSavings, GoalID: 1, Date: time.Now()}); err != nil {
			return err
		}
		_, err := tx.UpsertGoal(s.ctx, models.SavingsGoal{UserID: 1, GoalName: "Trip", SavedAmount: s.amount("500")})
		return err
	})
	s.Require().NoError(err)

	expenses, err := s.st.ExpensesByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(expenses, 1)
	goals, err := s.st.GoalsByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(goals, 1)
}

func (s *MemoryStoreSuite) TestTransactionRollsBackOnError() {
	boom := errors.New("boom")
	err := s.st.InTransaction(s.ctx, func(tx store.Store) error {
		if _, err := tx.AppendExpense(s.ctx, models.Expense{UserID: 1, Amount: s.amount("500"), Category: "Food", Date: time.Now()}); err != nil {
			return err
		}
		if _, err := tx.UpsertGoal(s.ctx, models.SavingsGoal{UserID: 1, GoalName: "Trip"}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	// Nothing from the failed transaction is visible.
	expenses, err := s.st.ExpensesByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Empty(expenses)
	goals, err := s.st.GoalsByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Empty(goals)
}

func (s *MemoryStoreSuite) TestNestedTransactionJoinsOuter() {
	err := s.st.InTransaction(s.ctx, func(tx store.Store) error {
		return tx.InTransaction(s.ctx, func(inner store.Store) error {
			_, err := inner.AppendIncome(s.ctx, models.Income{UserID: 1, Amount: s.amount("10"), Category: "Salary", Date: time.Now()})
			return err
		})
	})
	s.Require().NoError(err)

	incomes, err := s.st.IncomeByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(incomes, 1)
}
