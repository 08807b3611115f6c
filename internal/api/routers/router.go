package routers

import (
	"net/http"

	"finly/internal/api/handlers/advisor"
	"finly/internal/api/handlers/auth"
	"finly/internal/api/handlers/budgets"
	"finly/internal/api/handlers/goals"
	"finly/internal/api/handlers/ledger"
)

type Handlers struct {
	Auth    *auth.Handler
	Ledger  *ledger.Handler
	Budgets *budgets.Handler
	Goals   *goals.Handler
	Advisor *advisor.Handler
}

func MainRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	registerUserRoutes(mux, h.Auth)
	registerLedgerRoutes(mux, h.Ledger)
	registerBudgetRoutes(mux, h.Budgets)
	registerGoalRoutes(mux, h.Goals)
	registerAdvisorRoutes(mux, h.Advisor)

	return mux
}
