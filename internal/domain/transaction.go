package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Valid reports whether k is one of the two supported transaction kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single income or expense entry in a user's ledger.
// Date carries no time component; repositories store it as a calendar date.
type Transaction struct {
	ID        int64           `json:"id"`
	Owner     string          `json:"owner"`
	Date      time.Time       `json:"date"`
	Kind      Kind            `json:"kind"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TransactionFilters narrows ListByOwner results. Nil fields are ignored.
type TransactionFilters struct {
	Kind          *Kind
	Category      *string
	StartDate     *time.Time
	EndDate       *time.Time
	SortAscending bool
}

// UpdateTransactionData holds the mutable fields of a transaction.
// ID and Owner are fixed at creation.
type UpdateTransactionData struct {
	Date     time.Time
	Kind     Kind
	Category string
	Amount   decimal.Decimal
	Memo     string
}

// TransactionRepository defines the interface for transaction persistence.
// Every mutation except Create takes the owner so ownership is enforced at the
// store; an id that exists under a different owner behaves as not found.
type TransactionRepository interface {
	Create(tx *Transaction) (*Transaction, error)
	Update(owner string, id int64, data *UpdateTransactionData) (*Transaction, error)
	// Delete is idempotent: deleting an absent id is not an error.
	Delete(owner string, id int64) error
	DeleteAll(owner string) error
	// ListByOwner returns transactions ordered by date descending, then id
	// descending, unless filters request ascending order.
	ListByOwner(owner string, filters *TransactionFilters) ([]*Transaction, error)
}
