package routers

import (
	"net/http"

	"finly/internal/api/handlers/budgets"
)

func registerBudgetRoutes(mux *http.ServeMux, h *budgets.Handler) {
	mux.HandleFunc("POST /budgets", h.CreateBudget)
	mux.HandleFunc("GET /budgets", h.ListBudgets)
	mux.HandleFunc("GET /budgets/alerts", h.GetAlerts)
	mux.HandleFunc("DELETE /budgets/{id}", h.DeleteBudget)
}
