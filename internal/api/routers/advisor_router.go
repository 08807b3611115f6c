package routers

import (
	"net/http"

	"finly/internal/api/handlers/advisor"
)

func registerAdvisorRoutes(mux *http.ServeMux, h *advisor.Handler) {
	mux.HandleFunc("POST /advisor/category", h.SuggestCategory)
	mux.HandleFunc("GET /advisor/tips", h.ExpenseTips)
	mux.HandleFunc("POST /advisor/budget", h.SuggestBudget)
	mux.HandleFunc("GET /advisor/analytics", h.MonthlyAnalytics)
}
