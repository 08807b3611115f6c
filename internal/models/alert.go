package models

import "github.com/shopspring/decimal"

const (
	AlertStatusWarning  = "WARNING"
	AlertStatusExceeded = "EXCEEDED"
)

type Alert struct {
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     string          `json:"status"`
}
