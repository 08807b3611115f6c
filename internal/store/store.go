// Package store defines the narrow persistence contract the finance core
// depends on. Implementations live in subpackages: mysql for the durable
// store, memory for tests and local runs.
package store

import (
	"context"
	"errors"

	"finly/internal/models"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with a uniqueness
// constraint (username, email).
var ErrDuplicate = errors.New("record already exists")

// Store is the durable record store the services are built against.
//
// InTransaction runs fn against a view of the store whose writes become
// visible together on commit, or not at all. The savings funding engine
// relies on this for its append-expense + upsert-goal pair.
type Store interface {
	IncomeByUser(ctx context.Context, userID int64) ([]models.Income, error)
	AppendIncome(ctx context.Context, in models.Income) (models.Income, error)
	UpdateIncome(ctx context.Context, in models.Income) (models.Income, error)
	DeleteIncome(ctx context.Context, id, userID int64) error

	ExpensesByUser(ctx context.Context, userID int64) ([]models.Expense, error)
	AppendExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	DeleteExpense(ctx context.Context, id, userID int64) error

	BudgetsByUser(ctx context.Context, userID int64) ([]models.Budget, error)
	UpsertBudget(ctx context.Context, b models.Budget) (models.Budget, error)
	DeleteBudget(ctx context.Context, id, userID int64) error

	GoalsByUser(ctx context.Context, userID int64) ([]models.SavingsGoal, error)
	GoalByID(ctx context.Context, id int64) (models.SavingsGoal, error)
	UpsertGoal(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error)
	DeleteGoal(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UsersWithBudgets(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	InTransaction(ctx context.Context, fn func(Store) error) error
}
