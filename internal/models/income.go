package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID          int64           `json:"id,omitempty" db:"id,omitempty"`
	UserID      int64           `json:"user_id,omitempty" db:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Category    string          `json:"category,omitempty" db:"category,omitempty"`
	Description string          `json:"description,omitempty" db:"description,omitempty"`
	Date        time.Time       `json:"date" db:"date"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
}
