package mysql

import (
	"context"

	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"
)

func (s *Store) BudgetsByUser(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, user_id, category, limit_amount, period, created_at
		FROM budgets
		WHERE user_id = ?
		ORDER BY category`, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch budgets")
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Period, &b.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan budget")
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate budgets")
	}
	return budgets, nil
}

// UpsertBudget inserts the budget or, when one already exists for the same
// (user, category) pair, overwrites its limit and period.
func (s *Store) UpsertBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category, limit_amount, period)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE limit_amount = VALUES(limit_amount), period = VALUES(period)`,
		b.UserID, b.Category, b.LimitAmount, b.Period)
	if err != nil {
		return models.Budget{}, utils.ErrorHandler(err, "failed to upsert budget")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Budget{}, utils.ErrorHandler(err, "failed to read budget id")
	}
	if id != 0 {
		b.ID = id
		return b, nil
	}

	// Updated an existing row; fetch its id.
	err = s.q.QueryRowContext(ctx,
		"SELECT id FROM budgets WHERE user_id = ? AND category = ?",
		b.UserID, b.Category).Scan(&b.ID)
	if err != nil {
		return models.Budget{}, utils.ErrorHandler(err, "failed to fetch budget id")
	}
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id, userID int64) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete budget")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return utils.ErrorHandler(err, "failed to read affected rows")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
