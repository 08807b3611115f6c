package goals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"finly/internal/models"
	"finly/internal/services"
	"finly/internal/store/memory"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	st := memory.New()
	return NewHandler(services.NewSavingsGoalService(st)), st
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	// The JWT middleware stores numeric claims as float64.
	ctx := context.WithValue(r.Context(), utils.ContextKey("userId"), float64(1))
	return r.WithContext(ctx)
}

func seedIncome(t *testing.T, st *memory.Store, amount string) {
	t.Helper()
	d, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	_, err = st.AppendIncome(context.Background(), models.Income{
		UserID:   1,
		Amount:   d,
		Category: "Salary",
		Date:     time.Now(),
	})
	require.NoError(t, err)
}

func TestCreateGoalHandler(t *testing.T) {
	h, st := newTestHandler(t)
	seedIncome(t, st, "5000")

	rec := httptest.NewRecorder()
	h.CreateGoal(rec, authedRequest(http.MethodPost, "/goals",
		`{"goal_name":"Vacation","target_amount":"3000","saved_amount":"1000"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Status string             `json:"status"`
		Data   models.SavingsGoal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Vacation", resp.Data.GoalName)
	assert.True(t, resp.Data.SavedAmount.Equal(decimal.NewFromInt(1000)))
}

func TestCreateGoalHandlerValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.CreateGoal(rec, authedRequest(http.MethodPost, "/goals", `{"target_amount":"100"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.CreateGoal(rec, authedRequest(http.MethodPost, "/goals", `{"goal_name":"X","bogus":true}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.CreateGoal(rec, httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"goal_name":"X"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateGoalHandlerInsufficientBalance(t *testing.T) {
	h, st := newTestHandler(t)
	seedIncome(t, st, "500")

	rec := httptest.NewRecorder()
	h.CreateGoal(rec, authedRequest(http.MethodPost, "/goals",
		`{"goal_name":"Car","saved_amount":"501"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient balance. Available: 500.00")
}

func TestTopUpHandler(t *testing.T) {
	h, st := newTestHandler(t)
	seedIncome(t, st, "2000")

	goal, err := st.UpsertGoal(context.Background(), models.SavingsGoal{UserID: 1, GoalName: "Trip"})
	require.NoError(t, err)
	id := strconv.FormatInt(goal.ID, 10)

	r := authedRequest(http.MethodPost, "/goals/"+id+"/topup", `{"amount":"750"}`)
	r.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.TopUp(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data models.SavingsGoal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.SavedAmount.Equal(decimal.NewFromInt(750)))
}

func TestTopUpHandlerErrors(t *testing.T) {
	h, st := newTestHandler(t)
	seedIncome(t, st, "100")

	goal, err := st.UpsertGoal(context.Background(), models.SavingsGoal{UserID: 1, GoalName: "Trip"})
	require.NoError(t, err)
	id := strconv.FormatInt(goal.ID, 10)

	r := authedRequest(http.MethodPost, "/goals/abc/topup", `{"amount":"10"}`)
	r.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.TopUp(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	r = authedRequest(http.MethodPost, "/goals/999/topup", `{"amount":"10"}`)
	r.SetPathValue("id", "999")
	rec = httptest.NewRecorder()
	h.TopUp(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	r = authedRequest(http.MethodPost, "/goals/"+id+"/topup", `{"amount":"0"}`)
	r.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.TopUp(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteGoalHandlers(t *testing.T) {
	h, st := newTestHandler(t)

	goal, err := st.UpsertGoal(context.Background(), models.SavingsGoal{UserID: 1, GoalName: "Trip"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ListGoals(rec, authedRequest(http.MethodGet, "/goals", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Count int                  `json:"count"`
		Data  []models.SavingsGoal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Count)

	id := strconv.FormatInt(goal.ID, 10)
	r := authedRequest(http.MethodDelete, "/goals/"+id, "")
	r.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.DeleteGoal(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ListGoals(rec, authedRequest(http.MethodGet, "/goals", ""))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Equal(t, 0, listResp.Count)
}
