package testutil

import (
	"sort"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
)

// MockTransactionRepository is an in-memory implementation of
// domain.TransactionRepository honoring the same ordering and ownership
// semantics as the SQLite store.
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	NextID       int64
	CreateErr    error
	ListErr      error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{NextID: 1}
}

// Create assigns the next id and stores a copy of tx.
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	created := *tx
	created.ID = m.NextID
	created.CreatedAt = time.Now().UTC()
	m.NextID++
	m.Transactions = append(m.Transactions, &created)
	result := created
	return &result, nil
}

// Update applies data to the matching transaction, not-found on owner mismatch.
func (m *MockTransactionRepository) Update(owner string, id int64, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	for _, tx := range m.Transactions {
		if tx.ID == id && tx.Owner == owner {
			tx.Date = data.Date
			tx.Kind = data.Kind
			tx.Category = data.Category
			tx.Amount = data.Amount
			tx.Memo = data.Memo
			result := *tx
			return &result, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// Delete removes the matching transaction; absent ids are a no-op.
func (m *MockTransactionRepository) Delete(owner string, id int64) error {
	kept := m.Transactions[:0]
	for _, tx := range m.Transactions {
		if tx.ID == id && tx.Owner == owner {
			continue
		}
		kept = append(kept, tx)
	}
	m.Transactions = kept
	return nil
}

// DeleteAll removes every transaction for owner.
func (m *MockTransactionRepository) DeleteAll(owner string) error {
	kept := m.Transactions[:0]
	for _, tx := range m.Transactions {
		if tx.Owner == owner {
			continue
		}
		kept = append(kept, tx)
	}
	m.Transactions = kept
	return nil
}

// ListByOwner filters and orders like the SQLite repository: date
// descending then id descending, unless SortAscending is set.
func (m *MockTransactionRepository) ListByOwner(owner string, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var result []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.Owner != owner {
			continue
		}
		if filters != nil {
			if filters.Kind != nil && tx.Kind != *filters.Kind {
				continue
			}
			if filters.Category != nil && tx.Category != *filters.Category {
				continue
			}
			if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
				continue
			}
		}
		copied := *tx
		result = append(result, &copied)
	}

	ascending := filters != nil && filters.SortAscending
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			if ascending {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if ascending {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	return result, nil
}

// MockCategoryRepository is an in-memory implementation of
// domain.CategoryRepository.
type MockCategoryRepository struct {
	Categories []*domain.Category
	nextID     int64
}

// NewMockCategoryRepository creates an empty MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{nextID: 1}
}

// NewSeededCategoryRepository creates a MockCategoryRepository with the
// default nine categories the migration seeds.
func NewSeededCategoryRepository() *MockCategoryRepository {
	m := NewMockCategoryRepository()
	m.Add("Sales", domain.KindIncome)
	m.Add("Services", domain.KindIncome)
	m.Add("Other Income", domain.KindIncome)
	m.Add("Rent", domain.KindExpense)
	m.Add("Supplies", domain.KindExpense)
	m.Add("Utilities", domain.KindExpense)
	m.Add("Marketing", domain.KindExpense)
	m.Add("Insurance", domain.KindExpense)
	m.Add("Other Expense", domain.KindExpense)
	return m
}

// Add registers a category (helper for tests)
func (m *MockCategoryRepository) Add(name string, kind domain.Kind) {
	m.Categories = append(m.Categories, &domain.Category{ID: m.nextID, Name: name, Kind: kind})
	m.nextID++
}

// List returns categories alphabetically, optionally filtered by kind.
func (m *MockCategoryRepository) List(kindFilter *domain.Kind) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, c := range m.Categories {
		if kindFilter != nil && c.Kind != *kindFilter {
			continue
		}
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetByName retrieves a category by name.
func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	for _, c := range m.Categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// MockUserRepository is an in-memory implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

// Create stores a new user, rejecting username collisions.
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, exists := m.Users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	created := *user
	created.CreatedAt = time.Now().UTC()
	m.Users[user.Username] = &created
	result := created
	return &result, nil
}

// GetByUsername retrieves a user including the password hash.
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.Users[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

// UpdatePassword replaces the stored hash, not-found on unknown username.
func (m *MockUserRepository) UpdatePassword(username string, passwordHash []byte) error {
	user, ok := m.Users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// List returns all users ordered by username.
func (m *MockUserRepository) List() ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		copied := *user
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

// HasAdmin reports whether any stored user has the admin role.
func (m *MockUserRepository) HasAdmin() (bool, error) {
	for _, user := range m.Users {
		if user.Role == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// MockLoginLogRepository is an in-memory implementation of
// domain.LoginLogRepository. Set AppendErr to exercise the best-effort
// logging path.
type MockLoginLogRepository struct {
	Entries   []*domain.LoginLogEntry
	AppendErr error
	nextID    int64
}

// NewMockLoginLogRepository creates a new MockLoginLogRepository
func NewMockLoginLogRepository() *MockLoginLogRepository {
	return &MockLoginLogRepository{nextID: 1}
}

// Append records a login attempt.
func (m *MockLoginLogRepository) Append(username string, status domain.LoginStatus) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Entries = append(m.Entries, &domain.LoginLogEntry{
		ID:        m.nextID,
		Username:  username,
		LoginTime: time.Now().UTC(),
		Status:    status,
	})
	m.nextID++
	return nil
}

// List returns entries most recent first.
func (m *MockLoginLogRepository) List() ([]*domain.LoginLogEntry, error) {
	result := make([]*domain.LoginLogEntry, 0, len(m.Entries))
	for i := len(m.Entries) - 1; i >= 0; i-- {
		copied := *m.Entries[i]
		result = append(result, &copied)
	}
	return result, nil
}
