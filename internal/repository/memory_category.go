package repository

import (
	"context"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// GetCategory finds a category by ID
func (s *MemoryStore) GetCategory(_ context.Context, id uint64) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

// ListCategories returns all categories in insertion order
func (s *MemoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, id := range sortedIDs(s.categories) {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

// CreateCategory assigns the next category ID and stores the category
func (s *MemoryStore) CreateCategory(_ context.Context, category models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[category.ID] = category
	return &category, nil
}

// UpdateCategory merges the provided fields into an existing category
func (s *MemoryStore) UpdateCategory(_ context.Context, id uint64, update models.CategoryUpdate) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&category)
	s.categories[id] = category
	return &category, nil
}

// DeleteCategory removes a category unless a task still references it.
// Every call scans all tasks.
func (s *MemoryStore) DeleteCategory(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	for _, task := range s.tasks {
		if task.CategoryID == id {
			return ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return nil
}

// CountTasksByCategory returns the number of tasks per category ID
func (s *MemoryStore) CountTasksByCategory(_ context.Context) (map[uint64]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[uint64]int64, len(s.categories))
	for _, task := range s.tasks {
		counts[task.CategoryID]++
	}
	return counts, nil
}
