// Package mysql implements the store contract on MariaDB/MySQL using
// database/sql. All money columns are DECIMAL so amounts survive the round
// trip without binary-float drift.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"finly/internal/store"
	"finly/pkg/utils"
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store runs statements against db directly, or against an open
// transaction when created by InTransaction.
type Store struct {
	db *sql.DB
	q  queryer
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db, q: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(100) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS incomes (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT NOT NULL,
			amount DECIMAL(15,2) NOT NULL,
			category VARCHAR(50) NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT '',
			income_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT NOT NULL,
			amount DECIMAL(15,2) NOT NULL,
			category VARCHAR(50) NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT '',
			kind VARCHAR(20) NOT NULL DEFAULT 'user',
			goal_id BIGINT NOT NULL DEFAULT 0,
			expense_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT NOT NULL,
			category VARCHAR(50) NOT NULL,
			limit_amount DECIMAL(15,2) NOT NULL,
			period VARCHAR(20) NOT NULL DEFAULT 'monthly',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_budget_user_category (user_id, category),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS saving_goals (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT NOT NULL,
			goal_name VARCHAR(100) NOT NULL,
			target_amount DECIMAL(15,2) NOT NULL,
			saved_amount DECIMAL(15,2) NOT NULL DEFAULT 0,
			deadline VARCHAR(20) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// InTransaction begins a transaction and hands fn a store view bound to
// it. Any error from fn rolls the whole transaction back. Calls on an
// already transactional store reuse the open transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(store.Store) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return utils.ErrorHandler(err, "failed to start transaction")
	}

	txStore := &Store{db: s.db, q: tx}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			utils.Logger.Errorf("rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return utils.ErrorHandler(err, "failed to commit transaction")
	}
	return nil
}
