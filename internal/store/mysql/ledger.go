package mysql

import (
	"context"
	"database/sql"

	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"
)

func (s *Store) IncomeByUser(ctx context.Context, userID int64) ([]models.Income, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, user_id, amount, category, description, income_date, created_at
		FROM incomes
		WHERE user_id = ?
		ORDER BY income_date DESC, id DESC`, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch incomes")
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(&in.ID, &in.UserID, &in.Amount, &in.Category, &in.Description, &in.Date, &in.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan income")
		}
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate incomes")
	}
	return incomes, nil
}

func (s *Store) AppendIncome(ctx context.Context, in models.Income) (models.Income, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO incomes (user_id, amount, category, description, income_date)
		VALUES (?, ?, ?, ?, ?)`,
		in.UserID, in.Amount, in.Category, in.Description, in.Date)
	if err != nil {
		return models.Income{}, utils.ErrorHandler(err, "failed to insert income")
	}
	in.ID, err = res.LastInsertId()
	if err != nil {
		return models.Income{}, utils.ErrorHandler(err, "failed to read income id")
	}
	return in, nil
}

func (s *Store) UpdateIncome(ctx context.Context, in models.Income) (models.Income, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE incomes
		SET amount = ?, category = ?, description = ?, income_date = ?
		WHERE id = ? AND user_id = ?`,
		in.Amount, in.Category, in.Description, in.Date, in.ID, in.UserID)
	if err != nil {
		return models.Income{}, utils.ErrorHandler(err, "failed to update income")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Income{}, utils.ErrorHandler(err, "failed to read affected rows")
	}
	if n == 0 {
		if exists, err := s.incomeExists(ctx, in.ID, in.UserID); err != nil {
			return models.Income{}, err
		} else if !exists {
			return models.Income{}, store.ErrNotFound
		}
	}
	return in, nil
}

func (s *Store) incomeExists(ctx context.Context, id, userID int64) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx,
		"SELECT 1 FROM incomes WHERE id = ? AND user_id = ?", id, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, utils.ErrorHandler(err, "failed to check income")
	}
	return true, nil
}

func (s *Store) DeleteIncome(ctx context.Context, id, userID int64) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM incomes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete income")
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

func (s *Store) ExpensesByUser(ctx context.Context, userID int64) ([]models.Expense, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, user_id, amount, category, description, kind, goal_id, expense_date, created_at
		FROM expenses
		WHERE user_id = ?
		ORDER BY expense_date DESC, id DESC`, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch expenses")
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Kind, &e.GoalID, &e.Date, &e.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan expense")
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate expenses")
	}
	return expenses, nil
}

func (s *Store) AppendExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.Kind == "" {
		e.Kind = models.ExpenseKindUser
	}
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO expenses (user_id, amount, category, description, kind, goal_id, expense_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Amount, e.Category, e.Description, e.Kind, e.GoalID, e.Date)
	if err != nil {
		return models.Expense{}, utils.ErrorHandler(err, "failed to insert expense")
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return models.Expense{}, utils.ErrorHandler(err, "failed to read expense id")
	}
	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE expenses
		SET amount = ?, category = ?, description = ?, expense_date = ?
		WHERE id = ? AND user_id = ? AND kind = ?`,
		e.Amount, e.Category, e.Description, e.Date, e.ID, e.UserID, models.ExpenseKindUser)
	if err != nil {
		return models.Expense{}, utils.ErrorHandler(err, "failed to update expense")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Expense{}, utils.ErrorHandler(err, "failed to read affected rows")
	}
	if n == 0 {
		if exists, err := s.expenseExists(ctx, e.ID, e.UserID); err != nil {
			return models.Expense{}, err
		} else if !exists {
			return models.Expense{}, store.ErrNotFound
		}
	}
	return e, nil
}

func (s *Store) expenseExists(ctx context.Context, id, userID int64) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx,
		"SELECT 1 FROM expenses WHERE id = ? AND user_id = ? AND kind = ?",
		id, userID, models.ExpenseKindUser).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, utils.ErrorHandler(err, "failed to check expense")
	}
	return true, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id, userID int64) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ? AND kind = ?",
		id, userID, models.ExpenseKindUser)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete expense")
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
