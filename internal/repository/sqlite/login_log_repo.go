package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
)

// LoginLogRepository implements domain.LoginLogRepository using SQLite
type LoginLogRepository struct {
	db *sql.DB
}

// NewLoginLogRepository creates a new LoginLogRepository
func NewLoginLogRepository(db *sql.DB) *LoginLogRepository {
	return &LoginLogRepository{db: db}
}

// Append records one login attempt.
func (r *LoginLogRepository) Append(username string, status domain.LoginStatus) error {
	_, err := r.db.Exec(
		`INSERT INTO login_logs (username, login_time, status) VALUES (?, ?, ?)`,
		username, time.Now().UTC().Format(timestampLayout), string(status),
	)
	if err != nil {
		return fmt.Errorf("insert login log: %w", err)
	}
	return nil
}

// List returns login log entries, most recent first.
func (r *LoginLogRepository) List() ([]*domain.LoginLogEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, username, login_time, status FROM login_logs ORDER BY login_time DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query login logs: %w", err)
	}
	defer rows.Close()

	var result []*domain.LoginLogEntry
	for rows.Next() {
		var e domain.LoginLogEntry
		var loginTimeStr, status string
		if err := rows.Scan(&e.ID, &e.Username, &loginTimeStr, &status); err != nil {
			return nil, fmt.Errorf("scan login log: %w", err)
		}
		loginTime, err := time.Parse(timestampLayout, loginTimeStr)
		if err != nil {
			return nil, fmt.Errorf("parse login time: %w", err)
		}
		e.LoginTime = loginTime
		e.Status = domain.LoginStatus(status)
		result = append(result, &e)
	}
	return result, rows.Err()
}
