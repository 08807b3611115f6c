package ledger

import (
	"errors"
	"net/http"
	"time"

	"finly/internal/api/handlers"
	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entryRequest
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	date, err := req.validate()
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.store.AppendExpense(r.Context(), models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Kind:        models.ExpenseKindUser,
		Date:        date,
	})
	if err != nil {
		utils.Logger.Errorf("failed to create expense: %v", err)
		utils.WriteError(w, "error recording expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, map[string]any{"status": "success", "data": created})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	expenses, err := h.store.ExpensesByUser(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch expenses: %v", err)
		utils.WriteError(w, "error fetching expense entries", http.StatusInternalServerError)
		return
	}
	if column, desc, ok := utils.GetSortParams(r); ok {
		sortExpenses(expenses, column, desc)
	}
	page, limit := utils.GetPaginationParams(r)
	paged := paginate(expenses, page, limit)

	utils.WriteJSON(w, map[string]any{"status": "success", "count": len(expenses), "page": page, "data": paged})
}

// UpdateExpense edits a user-entered expense. Goal funding entries are
// system records and cannot be edited through this endpoint.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := handlers.PathID(r)
	if err != nil {
		utils.WriteError(w, "invalid expense ID", http.StatusBadRequest)
		return
	}

	var req entryRequest
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	date, err := req.validate()
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.store.UpdateExpense(r.Context(), models.Expense{
		ID:          id,
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "expense entry not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to update expense: %v", err)
		utils.WriteError(w, "error updating expense", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": updated})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := handlers.PathID(r)
	if err != nil {
		utils.WriteError(w, "invalid expense ID", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteExpense(r.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "expense entry not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete expense: %v", err)
		utils.WriteError(w, "error deleting expense", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "message": "expense deleted"})
}

// ExpenseStats returns overall and current-month totals plus a
// per-category breakdown of user-entered spend.
func (h *Handler) ExpenseStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	expenses, err := h.store.ExpensesByUser(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch expenses: %v", err)
		utils.WriteError(w, "error fetching expense entries", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total := decimal.Zero
	monthly := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		total = total.Add(e.Amount)
		if !e.Date.Before(monthStart) {
			monthly = monthly.Add(e.Amount)
		}
		if e.Kind == models.ExpenseKindUser {
			byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		}
	}

	utils.WriteJSON(w, map[string]any{
		"status": "success",
		"data": map[string]any{
			"total_expenses":   total,
			"monthly_expenses": monthly,
			"by_category":      byCategory,
			"entry_count":      len(expenses),
		},
	})
}
