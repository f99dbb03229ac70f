package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/kwadhq/cashflow-commander/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite.
// The registry is seeded by migration and read-only at runtime.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns categories in alphabetical order, optionally restricted to
// one kind.
func (r *CategoryRepository) List(kindFilter *domain.Kind) ([]*domain.Category, error) {
	query := `SELECT id, name, kind FROM categories`
	args := []any{}
	if kindFilter != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kindFilter))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var result []*domain.Category
	for rows.Next() {
		var c domain.Category
		var kind string
		if err := rows.Scan(&c.ID, &c.Name, &kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Kind = domain.Kind(kind)
		result = append(result, &c)
	}
	return result, rows.Err()
}

// GetByName retrieves a category by its unique name.
func (r *CategoryRepository) GetByName(name string) (*domain.Category, error) {
	var c domain.Category
	var kind string
	err := r.db.QueryRow(`SELECT id, name, kind FROM categories WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &kind)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	c.Kind = domain.Kind(kind)
	return &c, nil
}
