package ledger

import (
	"sort"
	"strings"

	"finly/internal/models"
)

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func compareIncome(a, b models.Income, column string) int {
	switch column {
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "category":
		return strings.Compare(a.Category, b.Category)
	default:
		return a.Date.Compare(b.Date)
	}
}

func compareExpense(a, b models.Expense, column string) int {
	switch column {
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "category":
		return strings.Compare(a.Category, b.Category)
	default:
		return a.Date.Compare(b.Date)
	}
}

func sortIncome(entries []models.Income, column string, desc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		c := compareIncome(entries[i], entries[j], column)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func sortExpenses(entries []models.Expense, column string, desc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		c := compareExpense(entries[i], entries[j], column)
		if desc {
			return c > 0
		}
		return c < 0
	})
}
