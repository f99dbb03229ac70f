package service

import (
	"testing"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	svc := NewCategoryService(testutil.NewSeededCategoryRepository())

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	income := domain.KindIncome
	names, err := svc.Names(&income)
	require.NoError(t, err)
	assert.Equal(t, []string{"Other Income", "Sales", "Services"}, names)

	expense := domain.KindExpense
	expenses, err := svc.List(&expense)
	require.NoError(t, err)
	assert.Len(t, expenses, 6)
	for _, c := range expenses {
		assert.Equal(t, domain.KindExpense, c.Kind)
	}
}

func TestListCategories_InvalidKind(t *testing.T) {
	svc := NewCategoryService(testutil.NewSeededCategoryRepository())

	kind := domain.Kind("Transfer")
	_, err := svc.List(&kind)
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}
