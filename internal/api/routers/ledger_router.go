package routers

import (
	"net/http"

	"finly/internal/api/handlers/ledger"
)

func registerLedgerRoutes(mux *http.ServeMux, h *ledger.Handler) {
	mux.HandleFunc("POST /income", h.CreateIncome)
	mux.HandleFunc("GET /income", h.ListIncome)
	mux.HandleFunc("PUT /income/{id}", h.UpdateIncome)
	mux.HandleFunc("DELETE /income/{id}", h.DeleteIncome)

	mux.HandleFunc("POST /expenses", h.CreateExpense)
	mux.HandleFunc("GET /expenses", h.ListExpenses)
	mux.HandleFunc("GET /expenses/stats", h.ExpenseStats)
	mux.HandleFunc("PUT /expenses/{id}", h.UpdateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", h.DeleteExpense)

	mux.HandleFunc("GET /balance", h.GetBalance)
}
