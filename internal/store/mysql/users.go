package mysql

import (
	"context"
	"database/sql"
	"strings"

	"finly/internal/models"
	"finly/internal/store"
	"finly/pkg/utils"
)

func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO users (username, email, password, role)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, u.Role)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return models.User{}, store.ErrDuplicate
		}
		return models.User{}, utils.ErrorHandler(err, "failed to insert user")
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return models.User{}, utils.ErrorHandler(err, "failed to read user id")
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.q.QueryRowContext(ctx, `
		SELECT id, username, email, password, role, created_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, utils.ErrorHandler(err, "failed to fetch user")
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.q.QueryRowContext(ctx, `
		SELECT id, username, email, password, role, created_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, utils.ErrorHandler(err, "failed to fetch user")
	}
	return u, nil
}

// UsersWithBudgets returns the users the alert digest job has to look at.
func (s *Store) UsersWithBudgets(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT DISTINCT u.id, u.username, u.email, u.role, u.created_at
		FROM users u
		JOIN budgets b ON b.user_id = u.id`)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to fetch users with budgets")
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, utils.ErrorHandler(err, "failed to scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.ErrorHandler(err, "failed to iterate users")
	}
	return users, nil
}

// DeleteUser removes the account; ledgers, budgets and goals go with it
// via ON DELETE CASCADE.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return utils.ErrorHandler(err, "failed to delete user")
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
