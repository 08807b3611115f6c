package mysql

import (
	"context"
	"database/sql"

	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"
)

func (s *Store) GoalsByUser(ctx context.Context, userID int64) ([]models.SavingsGoal, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, user_id, goal_name, target_amount, saved_amount, deadline, created_at
		FROM saving_goals
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch saving goals")
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalName, &g.TargetAmount, &g.SavedAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan saving goal")
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate saving goals")
	}
	return goals, nil
}

func (s *Store) GoalByID(ctx context.Context, id int64) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := s.q.QueryRowContext(ctx, `
		SELECT id, user_id, goal_name, target_amount, saved_amount, deadline, created_at
		FROM saving_goals
		WHERE id = ?`, id).
		Scan(&g.ID, &g.UserID, &g.GoalName, &g.TargetAmount, &g.SavedAmount, &g.Deadline, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return models.SavingsGoal{}, store.ErrNotFound
	}
	if err != nil {
		return models.SavingsGoal{}, utils.ErrorHandler(err, "failed to fetch saving goal")
	}
	return g, nil
}

func (s *Store) UpsertGoal(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	if g.ID == 0 {
		res, err := s.q.ExecContext(ctx, `
			INSERT INTO saving_goals (user_id, goal_name, target_amount, saved_amount, deadline)
			VALUES (?, ?, ?, ?, ?)`,
			g.UserID, g.GoalName, g.TargetAmount, g.SavedAmount, g.Deadline)
		if err != nil {
			return models.SavingsGoal{}, utils.ErrorHandler(err, "failed to insert saving goal")
		}
		g.ID, err = res.LastInsertId()
		if err != nil {
			return models.SavingsGoal{}, utils.ErrorHandler(err, "failed to read saving goal id")
		}
		return g, nil
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE saving_goals
		SET goal_name = ?, target_amount = ?, saved_amount = ?, deadline = ?
		WHERE id = ?`,
		g.GoalName, g.TargetAmount, g.SavedAmount, g.Deadline, g.ID)
	if err != nil {
		return models.SavingsGoal{}, utils.ErrorHandler(err, "failed to update saving goal")
	}
	if _, err := res.RowsAffected(); err != nil {
		return models.SavingsGoal{}, utils.ErrorHandler(err, "failed to read affected rows")
	}
	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM saving_goals WHERE id = ?", id)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete saving goal")
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
