package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"

	"github.com/shopspring/decimal"
)

// SavingsGoalService owns the goal lifecycle. Funding a goal is a
// check-then-act sequence: read the balance, decide, then append a
// "Savings" expense entry and bump the goal's saved amount. Both writes
// run in one store transaction, and the whole sequence is serialized per
// user so two concurrent fundings cannot both pass the check against
// stale ledger state and jointly overdraw the balance.
type SavingsGoalService struct {
	store store.Store
	locks sync.Map // user id -> *sync.Mutex
}

func NewSavingsGoalService(st store.Store) *SavingsGoalService {
	return &SavingsGoalService{store: st}
}

func (s *SavingsGoalService) userLock(userID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *SavingsGoalService) GoalsByUser(ctx context.Context, userID int64) ([]models.SavingsGoal, error) {
	goals, err := s.store.GoalsByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("fetch saving goals", err)
	}
	return goals, nil
}

// CreateGoal persists a new goal. A non-zero initial saved amount is a
// funding operation: it must pass the balance check and lands as a
// "Savings" expense entry in the same transaction as the goal itself.
func (s *SavingsGoalService) CreateGoal(ctx context.Context, goal models.SavingsGoal) (models.SavingsGoal, error) {
	if goal.TargetAmount.IsNegative() || goal.SavedAmount.IsNegative() {
		return models.SavingsGoal{}, ErrInvalidAmount
	}
	goal.ID = 0

	if goal.SavedAmount.IsZero() {
		created, err := s.store.UpsertGoal(ctx, goal)
		if err != nil {
			return models.SavingsGoal{}, storageErr("save goal", err)
		}
		return created, nil
	}

	mu := s.userLock(goal.UserID)
	mu.Lock()
	defer mu.Unlock()

	var created models.SavingsGoal
	err := s.store.InTransaction(ctx, func(tx store.Store) error {
		available, err := availableBalance(ctx, tx, goal.UserID)
		if err != nil {
			return err
		}
		if available.LessThan(goal.SavedAmount) {
			return &InsufficientBalanceError{Available: available, Requested: goal.SavedAmount}
		}

		created, err = tx.UpsertGoal(ctx, goal)
		if err != nil {
			return storageErr("save goal", err)
		}
		if err := appendSavingsExpense(ctx, tx, created, goal.SavedAmount, "Initial savings for: "+goal.GoalName); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.SavingsGoal{}, err
	}

	utils.Logger.Infof("Created saving goal %d for user %d with initial amount %s", created.ID, created.UserID, created.SavedAmount)
	return created, nil
}

// TopUp moves amount from the available balance into the goal. The
// balance is re-checked at call time, inside the same transaction that
// performs both writes.
func (s *SavingsGoalService) TopUp(ctx context.Context, goalID int64, amount decimal.Decimal) (models.SavingsGoal, error) {
	if amount.Sign() <= 0 {
		return models.SavingsGoal{}, ErrInvalidAmount
	}

	goal, err := s.store.GoalByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.SavingsGoal{}, ErrGoalNotFound
		}
		return models.SavingsGoal{}, storageErr("fetch goal", err)
	}

	mu := s.userLock(goal.UserID)
	mu.Lock()
	defer mu.Unlock()

	var updated models.SavingsGoal
	err = s.store.InTransaction(ctx, func(tx store.Store) error {
		g, err := tx.GoalByID(ctx, goalID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrGoalNotFound
			}
			return storageErr("fetch goal", err)
		}

		available, err := availableBalance(ctx, tx, g.UserID)
		if err != nil {
			return err
		}
		if available.LessThan(amount) {
			return &InsufficientBalanceError{Available: available, Requested: amount}
		}

		if err := appendSavingsExpense(ctx, tx, g, amount, "Savings added to: "+g.GoalName); err != nil {
			return err
		}
		g.SavedAmount = g.SavedAmount.Add(amount)
		updated, err = tx.UpsertGoal(ctx, g)
		if err != nil {
			return storageErr("save goal", err)
		}
		return nil
	})
	if err != nil {
		return models.SavingsGoal{}, err
	}

	utils.Logger.Infof("Topped up goal %d by %s for user %d", updated.ID, amount, updated.UserID)
	return updated, nil
}

// DeleteGoal removes the goal record only. The funding entries stay in
// the expense ledger: that money was spent into savings and remains spent
// from the balance's point of view.
func (s *SavingsGoalService) DeleteGoal(ctx context.Context, goalID int64) error {
	err := s.store.DeleteGoal(ctx, goalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGoalNotFound
		}
		return storageErr("delete goal", err)
	}
	return nil
}

func appendSavingsExpense(ctx context.Context, tx store.Store, goal models.SavingsGoal, amount decimal.Decimal, description string) error {
	_, err := tx.AppendExpense(ctx, models.Expense{
		UserID:      goal.UserID,
		Amount:      amount,
		Category:    models.CategorySavings,
		Description: description,
		Kind:        models.ExpenseKindSavings,
		GoalID:      goal.ID,
		Date:        time.Now(),
	})
	if err != nil {
		return storageErr("append savings expense", err)
	}
	return nil
}
