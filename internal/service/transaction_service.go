package service

import (
	"strings"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger mutations and listing with validation
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// TransactionInput holds the caller-supplied fields of a transaction
type TransactionInput struct {
	Date     time.Time
	Kind     domain.Kind
	Category string
	Amount   decimal.Decimal
	Memo     string
}

// validate checks input against the category registry before any mutation.
// Nothing is persisted when validation fails.
func (s *TransactionService) validate(input *TransactionInput) error {
	if input.Date.IsZero() {
		return domain.ErrDateRequired
	}
	if !input.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	input.Memo = strings.TrimSpace(input.Memo)
	if len(input.Memo) > domain.MaxMemoLength {
		return domain.ErrMemoTooLong
	}

	category, err := s.categoryRepo.GetByName(input.Category)
	if err != nil {
		return err
	}
	// A category registered under the opposite kind is rejected, not stored
	if category.Kind != input.Kind {
		return domain.ErrCategoryKindMismatch
	}
	return nil
}

// Add validates and persists a new transaction for owner.
func (s *TransactionService) Add(owner string, input TransactionInput) (*domain.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, domain.ErrUsernameRequired
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	return s.transactionRepo.Create(&domain.Transaction{
		Owner:    owner,
		Date:     util.DateOnly(input.Date),
		Kind:     input.Kind,
		Category: input.Category,
		Amount:   input.Amount,
		Memo:     input.Memo,
	})
}

// Update validates input and applies it to the transaction identified by
// owner and id. An id belonging to another owner is reported as not found.
func (s *TransactionService) Update(owner string, id int64, input TransactionInput) (*domain.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	return s.transactionRepo.Update(owner, id, &domain.UpdateTransactionData{
		Date:     util.DateOnly(input.Date),
		Kind:     input.Kind,
		Category: input.Category,
		Amount:   input.Amount,
		Memo:     input.Memo,
	})
}

// Delete removes a transaction. Calling it for an absent id succeeds.
func (s *TransactionService) Delete(owner string, id int64) error {
	return s.transactionRepo.Delete(owner, id)
}

// DeleteAll irreversibly wipes every transaction for owner.
func (s *TransactionService) DeleteAll(owner string) error {
	return s.transactionRepo.DeleteAll(owner)
}

// List returns the owner's transactions with optional filters applied.
func (s *TransactionService) List(owner string, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters != nil && filters.Kind != nil && !filters.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	return s.transactionRepo.ListByOwner(owner, filters)
}
