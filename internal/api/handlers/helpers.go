package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"finly/internal/services"
	"finly/internal/store"
	"finly/pkg/utils"
)

// UserIDFromContext pulls the authenticated user id the JWT middleware
// stored on the request. JWT numeric claims decode as float64.
func UserIDFromContext(r *http.Request) (int64, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int64(idFloat), true
}

// DecodeStrict decodes the request body rejecting unknown fields.
func DecodeStrict(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func CheckBlankFields(value interface{}) error {
	val := reflect.ValueOf(value)
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.String && field.String() == "" {
			return errors.New("all fields are required")
		}
	}
	return nil
}

// WriteServiceError maps service-layer error kinds onto HTTP statuses.
// Business-rule failures get 4xx; transient storage failures get 503 so
// clients know to retry later.
func WriteServiceError(w http.ResponseWriter, err error) {
	var insufficient *services.InsufficientBalanceError
	var invalidBudget *services.InvalidBudgetError
	var storageFailure *services.StorageError

	switch {
	case errors.As(err, &insufficient):
		utils.WriteError(w, "Insufficient balance. Available: "+insufficient.Available.StringFixed(2), http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrInvalidAmount):
		utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
	case errors.Is(err, services.ErrGoalNotFound):
		utils.WriteError(w, "saving goal not found", http.StatusNotFound)
	case errors.Is(err, services.ErrBudgetNotFound):
		utils.WriteError(w, "budget not found", http.StatusNotFound)
	case errors.As(err, &invalidBudget):
		utils.WriteError(w, invalidBudget.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, store.ErrNotFound):
		utils.WriteError(w, "record not found", http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicate):
		utils.WriteError(w, "record already exists", http.StatusConflict)
	case errors.As(err, &storageFailure):
		utils.Logger.Errorf("storage failure: %v", err)
		utils.WriteError(w, "service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		utils.Logger.Errorf("unexpected error: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// PathID parses the {id} path value.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
