package advisor

import (
	"net/http"

	"finly/internal/api/handlers"
	"finly/internal/services"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

type Handler struct {
	advisor *services.AdvisorService
}

func NewHandler(advisor *services.AdvisorService) *Handler {
	return &Handler{advisor: advisor}
}

// SuggestCategory matches a free-text description against known keywords.
func (h *Handler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil || req.Description == "" {
		utils.WriteError(w, "enter a description", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	category := h.advisor.SuggestCategory(req.Description)
	utils.WriteJSON(w, map[string]any{"status": "success", "data": map[string]string{"category": category}})
}

func (h *Handler) ExpenseTips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	report, err := h.advisor.ExpenseTips(r.Context(), userID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": report})
}

// SuggestBudget applies the 50-30-20 rule to the supplied income and
// spend figures.
func (h *Handler) SuggestBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	suggestion, err := h.advisor.SuggestBudget(req.Income, req.Expenses)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": suggestion})
}

func (h *Handler) MonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	analytics, err := h.advisor.MonthlyAnalytics(r.Context(), userID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": analytics})
}
