package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID           int64           `json:"id,omitempty" db:"id,omitempty"`
	UserID       int64           `json:"user_id,omitempty" db:"user_id,omitempty"`
	GoalName     string          `json:"goal_name" db:"goal_name"`
	TargetAmount decimal.Decimal `json:"target_amount" db:"target_amount"`
	SavedAmount  decimal.Decimal `json:"saved_amount" db:"saved_amount"`
	Deadline     string          `json:"deadline,omitempty" db:"deadline,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
}
