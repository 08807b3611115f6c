package budgets

import (
	"errors"
	"net/http"

	"finly/internal/api/handlers"
	"finly/internal/models"
	"finly/internal/services"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

type Handler struct {
	store  store.Store
	alerts *services.BudgetAlertService
}

func NewHandler(st store.Store, alerts *services.BudgetAlertService) *Handler {
	return &Handler{store: st, alerts: alerts}
}

// CreateBudget saves a category budget. A second budget for the same
// category overwrites the existing limit and period instead of inserting
// a duplicate.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Category    string          `json:"category"`
		LimitAmount decimal.Decimal `json:"limit_amount"`
		Period      string          `json:"period"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Category == "" {
		utils.WriteError(w, "category is required", http.StatusBadRequest)
		return
	}
	if req.LimitAmount.Sign() <= 0 {
		utils.WriteError(w, "limit amount must be greater than 0", http.StatusBadRequest)
		return
	}
	if req.Period == "" {
		req.Period = "monthly"
	}

	budget, err := h.store.UpsertBudget(r.Context(), models.Budget{
		UserID:      userID,
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		Period:      req.Period,
	})
	if err != nil {
		utils.Logger.Errorf("failed to upsert budget: %v", err)
		utils.WriteError(w, "error saving budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": budget})
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.store.BudgetsByUser(r.Context(), userID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch budgets: %v", err)
		utils.WriteError(w, "error fetching budgets", http.StatusInternalServerError)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "count": len(budgets), "data": budgets})
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "invalid budget ID", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteBudget(r.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "budget not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete budget: %v", err)
		utils.WriteError(w, "error deleting budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "message": "budget deleted"})
}

// GetAlerts recomputes budget alerts for the current period window.
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	alerts, err := h.alerts.ComputeAlerts(r.Context(), userID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "count": len(alerts), "data": alerts})
}
