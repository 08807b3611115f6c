package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget limits spend for one category over a period window. At most one
// budget exists per (user, category) pair.
type Budget struct {
	ID          int64           `json:"id,omitempty" db:"id,omitempty"`
	UserID      int64           `json:"user_id,omitempty" db:"user_id,omitempty"`
	Category    string          `json:"category" db:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount" db:"limit_amount"`
	Period      string          `json:"period" db:"period"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at,omitempty"`
}
