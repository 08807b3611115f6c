// Package memory is an in-memory store used by tests and local runs. A
// transaction works on a snapshot of the whole state and swaps it in on
// commit, so the two funding writes land together or not at all, matching
// the durable store's guarantee.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"finly/internal/models"
	"finly/internal/store"
)

type state struct {
	nextID   int64
	incomes  map[int64]models.Income
	expenses map[int64]models.Expense
	budgets  map[int64]models.Budget
	goals    map[int64]models.SavingsGoal
	users    map[int64]models.User
}

func newState() *state {
	return &state{
		incomes:  make(map[int64]models.Income),
		expenses: make(map[int64]models.Expense),
		budgets:  make(map[int64]models.Budget),
		goals:    make(map[int64]models.SavingsGoal),
		users:    make(map[int64]models.User),
	}
}

func (st *state) clone() *state {
	c := newState()
	c.nextID = st.nextID
	for k, v := range st.incomes {
		c.incomes[k] = v
	}
	for k, v := range st.expenses {
		c.expenses[k] = v
	}
	for k, v := range st.budgets {
		c.budgets[k] = v
	}
	for k, v := range st.goals {
		c.goals[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	return c
}

func (st *state) id() int64 {
	st.nextID++
	return st.nextID
}

type Store struct {
	mu sync.Mutex
	st *state
	tx bool
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: newState()}
}

// InTransaction serializes against all other operations, runs fn on a
// snapshot and commits it by swapping the state pointer.
func (s *Store) InTransaction(ctx context.Context, fn func(store.Store) error) error {
	if s.tx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	txs := &Store{st: work, tx: true}
	if err := fn(txs); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) lock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) IncomeByUser(ctx context.Context, userID int64) ([]models.Income, error) {
	defer s.lock()()
	var incomes []models.Income
	for _, in := range s.st.incomes {
		if in.UserID == userID {
			incomes = append(incomes, in)
		}
	}
	sort.Slice(incomes, func(i, j int) bool {
		if !incomes[i].Date.Equal(incomes[j].Date) {
			return incomes[i].Date.After(incomes[j].Date)
		}
		return incomes[i].ID > incomes[j].ID
	})
	return incomes, nil
}

func (s *Store) AppendIncome(ctx context.Context, in models.Income) (models.Income, error) {
	defer s.lock()()
	in.ID = s.st.id()
	in.CreatedAt = time.Now()
	s.st.incomes[in.ID] = in
	return in, nil
}

func (s *Store) UpdateIncome(ctx context.Context, in models.Income) (models.Income, error) {
	defer s.lock()()
	existing, ok := s.st.incomes[in.ID]
	if !ok || existing.UserID != in.UserID {
		return models.Income{}, store.ErrNotFound
	}
	in.CreatedAt = existing.CreatedAt
	s.st.incomes[in.ID] = in
	return in, nil
}

func (s *Store) DeleteIncome(ctx context.Context, id, userID int64) error {
	defer s.lock()()
	in, ok := s.st.incomes[id]
	if !ok || in.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.st.incomes, id)
	return nil
}

func (s *Store) ExpensesByUser(ctx context.Context, userID int64) ([]models.Expense, error) {
	defer s.lock()()
	var expenses []models.Expense
	for _, e := range s.st.expenses {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

func (s *Store) AppendExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	defer s.lock()()
	if e.Kind == "" {
		e.Kind = models.ExpenseKindUser
	}
	e.ID = s.st.id()
	e.CreatedAt = time.Now()
	s.st.expenses[e.ID] = e
	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	defer s.lock()()
	existing, ok := s.st.expenses[e.ID]
	if !ok || existing.UserID != e.UserID || existing.Kind != models.ExpenseKindUser {
		return models.Expense{}, store.ErrNotFound
	}
	e.Kind = existing.Kind
	e.GoalID = existing.GoalID
	e.CreatedAt = existing.CreatedAt
	s.st.expenses[e.ID] = e
	return e, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id, userID int64) error {
	defer s.lock()()
	e, ok := s.st.expenses[id]
	if !ok || e.UserID != userID || e.Kind != models.ExpenseKindUser {
		return store.ErrNotFound
	}
	delete(s.st.expenses, id)
	return nil
}

func (s *Store) BudgetsByUser(ctx context.Context, userID int64) ([]models.Budget, error) {
	defer s.lock()()
	var budgets []models.Budget
	for _, b := range s.st.budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
	return budgets, nil
}

func (s *Store) UpsertBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	defer s.lock()()
	for id, existing := range s.st.budgets {
		if existing.UserID == b.UserID && strings.EqualFold(existing.Category, b.Category) {
			existing.LimitAmount = b.LimitAmount
			existing.Period = b.Period
			s.st.budgets[id] = existing
			return existing, nil
		}
	}
	b.ID = s.st.id()
	b.CreatedAt = time.Now()
	s.st.budgets[b.ID] = b
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id, userID int64) error {
	defer s.lock()()
	b, ok := s.st.budgets[id]
	if !ok || b.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.st.budgets, id)
	return nil
}

func (s *Store) GoalsByUser(ctx context.Context, userID int64) ([]models.SavingsGoal, error) {
	defer s.lock()()
	var goals []models.SavingsGoal
	for _, g := range s.st.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (s *Store) GoalByID(ctx context.Context, id int64) (models.SavingsGoal, error) {
	defer s.lock()()
	g, ok := s.st.goals[id]
	if !ok {
		return models.SavingsGoal{}, store.ErrNotFound
	}
	return g, nil
}

func (s *Store) UpsertGoal(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	defer s.lock()()
	if g.ID == 0 {
		g.ID = s.st.id()
		g.CreatedAt = time.Now()
	}
	s.st.goals[g.ID] = g
	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	defer s.lock()()
	if _, ok := s.st.goals[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.st.goals, id)
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	defer s.lock()()
	for _, existing := range s.st.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return models.User{}, store.ErrDuplicate
		}
	}
	u.ID = s.st.id()
	u.CreatedAt = time.Now()
	s.st.users[u.ID] = u
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	defer s.lock()()
	for _, u := range s.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	defer s.lock()()
	u, ok := s.st.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) UsersWithBudgets(ctx context.Context) ([]models.User, error) {
	defer s.lock()()
	seen := make(map[int64]bool)
	for _, b := range s.st.budgets {
		seen[b.UserID] = true
	}
	var users []models.User
	for id, u := range s.st.users {
		if seen[id] {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	defer s.lock()()
	if _, ok := s.st.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.st.users, id)
	for eid, e := range s.st.expenses {
		if e.UserID == id {
			delete(s.st.expenses, eid)
		}
	}
	for iid, in := range s.st.incomes {
		if in.UserID == id {
			delete(s.st.incomes, iid)
		}
	}
	for bid, b := range s.st.budgets {
		if b.UserID == id {
			delete(s.st.budgets, bid)
		}
	}
	for gid, g := range s.st.goals {
		if g.UserID == id {
			delete(s.st.goals, gid)
		}
	}
	return nil
}
