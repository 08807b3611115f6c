package goals

import (
	"net/http"

	"finly/internal/api/handlers"
	"finly/internal/models"
	"finly/internal/services"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

type Handler struct {
	goals *services.SavingsGoalService
}

func NewHandler(goals *services.SavingsGoalService) *Handler {
	return &Handler{goals: goals}
}

// CreateGoal creates a saving goal. When an initial saved amount is
// supplied the service funds it from the available balance, so the
// request can fail with insufficient balance.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
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
		GoalName     string          `json:"goal_name"`
		TargetAmount decimal.Decimal `json:"target_amount"`
		SavedAmount  decimal.Decimal `json:"saved_amount"`
		Deadline     string          `json:"deadline"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.GoalName == "" {
		utils.WriteError(w, "goal name is required", http.StatusBadRequest)
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), models.SavingsGoal{
		UserID:       userID,
		GoalName:     req.GoalName,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, map[string]any{"status": "success", "data": goal})
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := h.goals.GoalsByUser(r.Context(), userID)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}
	if goals == nil {
		goals = []models.SavingsGoal{}
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "count": len(goals), "data": goals})
}

// TopUp commits money from the available balance into the goal.
func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := handlers.UserIDFromContext(r); !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := handlers.PathID(r)
	if err != nil {
		utils.WriteError(w, "invalid goal ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "enter amount", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	goal, err := h.goals.TopUp(r.Context(), goalID, req.Amount)
	if err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "data": goal})
}

// DeleteGoal removes the goal record. Its funding entries stay in the
// expense ledger.
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := handlers.UserIDFromContext(r); !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	goalID, err := handlers.PathID(r)
	if err != nil {
		utils.WriteError(w, "invalid goal ID", http.StatusBadRequest)
		return
	}

	if err := h.goals.DeleteGoal(r.Context(), goalID); err != nil {
		handlers.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{"status": "success", "message": "goal deleted"})
}
