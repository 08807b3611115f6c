package auth

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"finly/internal/api/handlers"
	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

type Handler struct {
	store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

// Register creates an account and sends the welcome email in the
// background so signup latency does not depend on SMTP.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := handlers.CheckBlankFields(req); err != nil {
		utils.WriteError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username: strings.ToLower(req.Username),
		Email:    strings.ToLower(req.Email),
		Password: hashedPwd,
		Role:     "user",
	}

	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.WriteError(w, "email or username already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to create user: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	go func(email, username string) {
		if err := utils.SendWelcomeEmail(email, username); err != nil {
			utils.Logger.Errorf("failed to send welcome email to %s: %v", email, err)
		}
	}(created.Email, created.Username)

	created.Password = ""
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, map[string]any{"status": "success", "data": created})
}

// Login verifies credentials and sets the signed JWT in the Bearer cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := handlers.DecodeStrict(r, &req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.store.UserByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.Logger.Errorf("failed to fetch user: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := utils.VerifyPassword(req.Password, user.Password); err != nil {
		utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	expMinutes, err := strconv.Atoi(os.Getenv("JWT_EXP_DURATION"))
	if err != nil || expMinutes <= 0 {
		expMinutes = 60
	}

	claims := jwt.MapClaims{
		"uid":  user.ID,
		"user": user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(time.Duration(expMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		utils.Logger.Errorf("failed to sign token: %v", err)
		utils.WriteError(w, "error logging in", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(time.Duration(expMinutes) * time.Minute),
	})

	user.Password = ""
	utils.WriteJSON(w, map[string]any{"status": "success", "data": user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	utils.WriteJSON(w, map[string]any{"status": "success", "message": "logged out"})
}

// DeleteAccount removes the user and cascades to ledgers, budgets and
// goals.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.store.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to delete user %d: %v", userID, err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.Logger.Infof("Deleted account %d and all associated records", userID)
	utils.WriteJSON(w, map[string]any{"status": "success", "message": "account deleted"})
}
