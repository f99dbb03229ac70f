package service

import "github.com/kwadhq/cashflow-commander/internal/domain"

// CategoryService exposes the read-only category registry
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns categories alphabetically, optionally restricted to one kind.
func (s *CategoryService) List(kindFilter *domain.Kind) ([]*domain.Category, error) {
	if kindFilter != nil && !kindFilter.Valid() {
		return nil, domain.ErrInvalidKind
	}
	return s.categoryRepo.List(kindFilter)
}

// Names returns just the category names, in the same order as List.
func (s *CategoryService) Names(kindFilter *domain.Kind) ([]string, error) {
	categories, err := s.List(kindFilter)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}
