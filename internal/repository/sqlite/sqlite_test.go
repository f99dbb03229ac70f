package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cashflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTransactionRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	created, err := repo.Create(&domain.Transaction{
		Owner:    "alice",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Kind:     domain.KindIncome,
		Category: "Sales",
		Amount:   decimal.RequireFromString("100.50"),
		Memo:     "invoice #42",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	listing, err := repo.ListByOwner("alice", nil)
	require.NoError(t, err)
	require.Len(t, listing, 1)

	got := listing[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice", got.Owner)
	assert.True(t, got.Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.KindIncome, got.Kind)
	assert.Equal(t, "Sales", got.Category)
	// Decimal survives the round trip exactly
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, "invoice #42", got.Memo)
}

func TestTransactionRepository_OrderAndFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	add := func(owner string, date time.Time, kind domain.Kind, category, amount string) *domain.Transaction {
		tx, err := repo.Create(&domain.Transaction{
			Owner:    owner,
			Date:     date,
			Kind:     kind,
			Category: category,
			Amount:   decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
		return tx
	}

	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	jan9 := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	add("alice", jan5, domain.KindIncome, "Sales", "100")
	add("alice", jan9, domain.KindExpense, "Rent", "40")
	add("alice", jan9, domain.KindIncome, "Services", "60")
	add("bob", jan5, domain.KindIncome, "Sales", "999")

	t.Run("date desc then id desc", func(t *testing.T) {
		listing, err := repo.ListByOwner("alice", nil)
		require.NoError(t, err)
		require.Len(t, listing, 3)
		assert.Equal(t, int64(3), listing[0].ID)
		assert.Equal(t, int64(2), listing[1].ID)
		assert.Equal(t, int64(1), listing[2].ID)
	})

	t.Run("kind and category filters", func(t *testing.T) {
		kind := domain.KindExpense
		listing, err := repo.ListByOwner("alice", &domain.TransactionFilters{Kind: &kind})
		require.NoError(t, err)
		require.Len(t, listing, 1)
		assert.Equal(t, "Rent", listing[0].Category)

		category := "Sales"
		listing, err = repo.ListByOwner("alice", &domain.TransactionFilters{Category: &category})
		require.NoError(t, err)
		require.Len(t, listing, 1)
		assert.Equal(t, int64(1), listing[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		listing, err := repo.ListByOwner("alice", &domain.TransactionFilters{StartDate: &jan9})
		require.NoError(t, err)
		assert.Len(t, listing, 2)

		listing, err = repo.ListByOwner("alice", &domain.TransactionFilters{EndDate: &jan5})
		require.NoError(t, err)
		assert.Len(t, listing, 1)
	})

	t.Run("owner isolation", func(t *testing.T) {
		listing, err := repo.ListByOwner("bob", nil)
		require.NoError(t, err)
		require.Len(t, listing, 1)
		assert.True(t, listing[0].Amount.Equal(decimal.RequireFromString("999")))
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	created, err := repo.Create(&domain.Transaction{
		Owner:    "alice",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Kind:     domain.KindIncome,
		Category: "Sales",
		Amount:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, err := repo.Update("alice", created.ID, &domain.UpdateTransactionData{
		Date:     time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		Kind:     domain.KindIncome,
		Category: "Services",
		Amount:   decimal.RequireFromString("150.25"),
		Memo:     "rebilled",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Services", updated.Category)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, "rebilled", updated.Memo)

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Update("alice", 9999, &domain.UpdateTransactionData{
			Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Kind: domain.KindIncome,
			Category: "Sales", Amount: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("foreign owner", func(t *testing.T) {
		_, err := repo.Update("bob", created.ID, &domain.UpdateTransactionData{
			Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Kind: domain.KindIncome,
			Category: "Sales", Amount: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_DeleteAndDeleteAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	created, err := repo.Create(&domain.Transaction{
		Owner:    "alice",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Kind:     domain.KindIncome,
		Category: "Sales",
		Amount:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete("alice", created.ID))
	require.NoError(t, repo.Delete("alice", created.ID)) // second delete is a no-op

	listing, err := repo.ListByOwner("alice", nil)
	require.NoError(t, err)
	assert.Empty(t, listing)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(&domain.Transaction{
			Owner:    "alice",
			Date:     time.Date(2024, 1, 5+i, 0, 0, 0, 0, time.UTC),
			Kind:     domain.KindIncome,
			Category: "Sales",
			Amount:   decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.DeleteAll("alice"))

	listing, err = repo.ListByOwner("alice", nil)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestCategoryRepository_SeededDefaults(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)

	all, err := repo.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	income := domain.KindIncome
	incomes, err := repo.List(&income)
	require.NoError(t, err)
	require.Len(t, incomes, 3)
	assert.Equal(t, "Other Income", incomes[0].Name)
	assert.Equal(t, "Sales", incomes[1].Name)
	assert.Equal(t, "Services", incomes[2].Name)

	rent, err := repo.GetByName("Rent")
	require.NoError(t, err)
	assert.Equal(t, domain.KindExpense, rent.Kind)

	_, err = repo.GetByName("Lottery")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Create(&domain.User{
		Username:     "alice",
		PasswordHash: []byte("hash-a"),
		Role:         domain.RoleUser,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Create(&domain.User{
			Username:     "alice",
			PasswordHash: []byte("hash-b"),
			Role:         domain.RoleUser,
		})
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("get includes hash", func(t *testing.T) {
		user, err := repo.GetByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, []byte("hash-a"), user.PasswordHash)

		_, err = repo.GetByUsername("nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword("alice", []byte("hash-c")))
		user, err := repo.GetByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, []byte("hash-c"), user.PasswordHash)

		err = repo.UpdatePassword("nobody", []byte("hash-d"))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("list omits hashes", func(t *testing.T) {
		users, err := repo.List()
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Empty(t, users[0].PasswordHash)
	})

	t.Run("has admin", func(t *testing.T) {
		hasAdmin, err := repo.HasAdmin()
		require.NoError(t, err)
		assert.False(t, hasAdmin)

		_, err = repo.Create(&domain.User{
			Username:     "root",
			PasswordHash: []byte("hash"),
			Role:         domain.RoleAdmin,
		})
		require.NoError(t, err)

		hasAdmin, err = repo.HasAdmin()
		require.NoError(t, err)
		assert.True(t, hasAdmin)
	})
}

func TestLoginLogRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoginLogRepository(db)

	require.NoError(t, repo.Append("alice", domain.LoginFailure))
	require.NoError(t, repo.Append("alice", domain.LoginSuccess))
	require.NoError(t, repo.Append("bob", domain.LoginSuccess))

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Most recent first; ties on timestamp break by id descending
	assert.Equal(t, "bob", entries[0].Username)
	assert.Equal(t, domain.LoginSuccess, entries[1].Status)
	assert.Equal(t, "alice", entries[2].Username)
	assert.Equal(t, domain.LoginFailure, entries[2].Status)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cashflow.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
}
