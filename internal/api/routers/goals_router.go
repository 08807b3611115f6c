package routers

import (
	"net/http"

	"finly/internal/api/handlers/goals"
)

func registerGoalRoutes(mux *http.ServeMux, h *goals.Handler) {
	mux.HandleFunc("POST /goals", h.CreateGoal)
	mux.HandleFunc("GET /goals", h.ListGoals)
	mux.HandleFunc("POST /goals/{id}/topup", h.TopUp)
	mux.HandleFunc("DELETE /goals/{id}", h.DeleteGoal)
}
