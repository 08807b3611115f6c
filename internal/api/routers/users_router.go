package routers

import (
	"net/http"

	"finly/internal/api/handlers/auth"
)

func registerUserRoutes(mux *http.ServeMux, h *auth.Handler) {
	mux.HandleFunc("POST /users/signup", h.Register)
	mux.HandleFunc("POST /users/login", h.Login)
	mux.HandleFunc("POST /users/logout", h.Logout)
	mux.HandleFunc("DELETE /users/account", h.DeleteAccount)
}
