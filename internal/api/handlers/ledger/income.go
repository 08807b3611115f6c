// Package ledger exposes the income and expense ledgers over HTTP. These
// endpoints are direct pass-through persistence; the balance and funding
// invariants live in the services layer.
package ledger

import (
	"errors"
	"net/http"
	"time"

	"finly/internal/api/handlers"
	"finly/internal/models"
	"finly/internal/services"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Handler struct {
	store   store.Store
	balance *services.BalanceService
}

func NewHandler(st store.Store, balance *services.BalanceService) *Handler {
	return &Handler{store: st, balance: balance}
}

type entryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (req *entryRequest) validate() (time.Time, error) {
	if req.Amount.IsNegative() {
		return time.Time{}, errors.New("amount cannot be negative")
	}
	if req.Category == "" {
		return time.Time{}, errors.New("category is required")
	}
	if req.Date == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, errors.New("date must be formatted as YYYY-MM-DD")
	}
	return date, nil
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
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

	created, err := h.store.AppendIncome(r.Context(), models.Income{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		utils.Logger.Errorf("failed to create income: %v", err)
		utils.WriteError(w, "error recording income", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, map[string]any{"status": "success", "data": created})
}

func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	incomes, err := h.store.IncomeByUser(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch incomes: %v", err)
		utils.WriteError(w, "error fetching income entries", http.StatusInternalServerError)
		return
	}
	if column, desc, ok := utils.GetSortParams(r); ok {
		sortIncome(incomes, column, desc)
	}
	page, limit := utils.GetPaginationParams(r)
	paged := paginate(incomes, page, limit)

	utils.WriteJSON(w, map[string]any{"status": "success", "count": len(incomes), "page": page, "data": paged})
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid income ID", http.StatusBadRequest)
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

	updated, err := h.store.UpdateIncome(r.Context(), models.Income{
		ID:          id,
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "income entry not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to update income: %v", err)
		utils.WriteError(w, "error updating income", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": updated})
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid income ID", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteIncome(r.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "income entry not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete income: %v", err)
		utils.WriteError(w, "error deleting income", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "message": "income deleted"})
}

// GetBalance returns the derived available balance: sum of incomes minus
// sum of expenses, recomputed from the ledgers on every call.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	available, err := h.balance.AvailableBalance(r.Context(), userID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": map[string]any{"available_balance": available}})
}
