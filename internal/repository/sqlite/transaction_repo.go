package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using SQLite
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create persists a new transaction and returns it with its assigned id and
// creation timestamp.
func (r *TransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	createdAt := time.Now().UTC()

	res, err := r.db.Exec(
		`INSERT INTO transactions (owner, date, kind, category, amount, memo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.Owner,
		tx.Date.Format(dateLayout),
		string(tx.Kind),
		tx.Category,
		tx.Amount.String(),
		tx.Memo,
		createdAt.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *tx
	created.ID = id
	created.Date = util.DateOnly(tx.Date)
	created.CreatedAt = createdAt
	return &created, nil
}

// Update applies data to the transaction identified by owner and id.
// An id that does not exist, or exists under a different owner, returns
// domain.ErrTransactionNotFound without leaking which case occurred.
func (r *TransactionRepository) Update(owner string, id int64, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	res, err := r.db.Exec(
		`UPDATE transactions
		 SET date = ?, kind = ?, category = ?, amount = ?, memo = ?
		 WHERE id = ? AND owner = ?`,
		data.Date.Format(dateLayout),
		string(data.Kind),
		data.Category,
		data.Amount.String(),
		data.Memo,
		id,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return r.getByID(owner, id)
}

// Delete removes a transaction. Deleting an id that is already absent is a
// no-op, not an error.
func (r *TransactionRepository) Delete(owner string, id int64) error {
	if _, err := r.db.Exec(`DELETE FROM transactions WHERE id = ? AND owner = ?`, id, owner); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// DeleteAll removes every transaction belonging to owner.
func (r *TransactionRepository) DeleteAll(owner string) error {
	if _, err := r.db.Exec(`DELETE FROM transactions WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("delete all transactions: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's transactions, date descending then id
// descending by default, with optional filters applied.
func (r *TransactionRepository) ListByOwner(owner string, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	query := `SELECT id, owner, date, kind, category, amount, memo, created_at
		 FROM transactions WHERE owner = ?`
	args := []any{owner}

	if filters != nil {
		if filters.Kind != nil {
			query += ` AND kind = ?`
			args = append(args, string(*filters.Kind))
		}
		if filters.Category != nil {
			query += ` AND category = ?`
			args = append(args, *filters.Category)
		}
		if filters.StartDate != nil {
			query += ` AND date >= ?`
			args = append(args, filters.StartDate.Format(dateLayout))
		}
		if filters.EndDate != nil {
			query += ` AND date <= ?`
			args = append(args, filters.EndDate.Format(dateLayout))
		}
	}

	if filters != nil && filters.SortAscending {
		query += ` ORDER BY date ASC, id ASC`
	} else {
		query += ` ORDER BY date DESC, id DESC`
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (r *TransactionRepository) getByID(owner string, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(
		`SELECT id, owner, date, kind, category, amount, memo, created_at
		 FROM transactions WHERE id = ? AND owner = ?`, id, owner)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var dateStr, kind, amountStr, createdAtStr string
	if err := row.Scan(&tx.ID, &tx.Owner, &dateStr, &kind, &tx.Category, &amountStr, &tx.Memo, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date: %w", err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse transaction amount: %w", err)
	}
	createdAt, err := time.Parse(timestampLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parse transaction created_at: %w", err)
	}

	tx.Date = date
	tx.Kind = domain.Kind(kind)
	tx.Amount = amount
	tx.CreatedAt = createdAt
	return &tx, nil
}
