package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense kinds. Savings commitments are ordinary expense entries from the
// ledger's point of view, but carry their own kind so a user-entered
// "Savings" category expense is never mistaken for a funding entry.
const (
	ExpenseKindUser    = "user"
	ExpenseKindSavings = "savings"
)

// CategorySavings is the category written on goal funding entries.
const CategorySavings = "Savings"

type Expense struct {
	ID          int64           `json:"id,omitempty" db:"id,omitempty"`
	UserID      int64           `json:"user_id,omitempty" db:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Category    string          `json:"category,omitempty" db:"category,omitempty"`
	Description string          `json:"description,omitempty" db:"description,omitempty"`
	Kind        string          `json:"kind,omitempty" db:"kind,omitempty"`
	GoalID      int64           `json:"goal_id,omitempty" db:"goal_id,omitempty"`
	Date        time.Time       `json:"date" db:"date"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
}
