package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. A username collision returns domain.ErrUserExists.
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	createdAt := time.Now().UTC()

	_, err := r.db.Exec(
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`,
		user.Username, user.PasswordHash, string(user.Role), createdAt.Format(timestampLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "constraint failed") {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.CreatedAt = createdAt
	return &created, nil
}

// GetByUsername retrieves a user with their password hash.
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	var u domain.User
	var role, createdAtStr string
	err := r.db.QueryRow(
		`SELECT username, password_hash, role, created_at FROM users WHERE username = ?`, username).
		Scan(&u.Username, &u.PasswordHash, &role, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	createdAt, err := time.Parse(timestampLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = createdAt
	return &u, nil
}

// UpdatePassword replaces the stored hash. A username with no matching row
// returns domain.ErrUserNotFound rather than silently updating nothing.
func (r *UserRepository) UpdatePassword(username string, passwordHash []byte) error {
	res, err := r.db.Exec(`UPDATE users SET password_hash = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns all users without their password hashes, oldest first.
func (r *UserRepository) List() ([]*domain.User, error) {
	rows, err := r.db.Query(`SELECT username, role, created_at FROM users ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var u domain.User
		var role, createdAtStr string
		if err := rows.Scan(&u.Username, &role, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		createdAt, err := time.Parse(timestampLayout, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parse user created_at: %w", err)
		}
		u.Role = domain.Role(role)
		u.CreatedAt = createdAt
		result = append(result, &u)
	}
	return result, rows.Err()
}

// HasAdmin reports whether at least one admin user exists.
func (r *UserRepository) HasAdmin() (bool, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&count); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}
