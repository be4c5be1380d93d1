package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryHasTasks = errors.New("category has associated tasks")
)

// CategoryService provides business logic for category operations.
type CategoryService struct {
	store repository.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store repository.Store) *CategoryService {
	return &CategoryService{
		store: store,
	}
}

// CreateCategoryInput represents parameters to create a new category.
type CreateCategoryInput struct {
	Name  string
	Color string
}

// ListCategories returns every category with its current task count.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.CategoryWithCount, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	counts, err := s.store.CountTasksByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	result := make([]models.CategoryWithCount, len(categories))
	for i, category := range categories {
		result[i] = models.CategoryWithCount{
			Category: category,
			Count:    counts[category.ID],
		}
	}
	return result, nil
}

// GetCategory returns a single category.
func (s *CategoryService) GetCategory(ctx context.Context, id uint64) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// CreateCategory stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	category, err := s.store.CreateCategory(ctx, models.Category{
		Name:  input.Name,
		Color: input.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory merges the provided fields into a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint64, update models.CategoryUpdate) (*models.Category, error) {
	category, err := s.store.UpdateCategory(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category that no task references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	err := s.store.DeleteCategory(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repository.ErrCategoryInUse):
		return ErrCategoryHasTasks
	default:
		return fmt.Errorf("failed to delete category: %w", err)
	}
}
