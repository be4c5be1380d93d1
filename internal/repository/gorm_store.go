package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/taskboard-api/internal/database"
	"github.com/yukikurage/taskboard-api/internal/models"
)

var _ Store = (*GormStore)(nil)

// GormStore is a GORM implementation of Store, meant to run on an
// in-memory SQLite database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetUser finds a user by ID
func (s *GormStore) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "find user")
	}
	return &user, nil
}

// GetUserByUsername finds a user by username
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "find user")
	}
	return &user, nil
}

// CreateUser assigns the next user ID and stores the user
func (s *GormStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCategory finds a category by ID
func (s *GormStore) GetCategory(ctx context.Context, id uint64) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFoundOr(err, "find category")
	}
	return &category, nil
}

// ListCategories returns all categories in insertion order
func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory assigns the next category ID and stores the category
func (s *GormStore) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	category.ID = 0
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory merges the provided fields into an existing category
func (s *GormStore) UpdateCategory(ctx context.Context, id uint64, update models.CategoryUpdate) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return notFoundOr(err, "find category")
		}
		update.Apply(&category)
		if err := tx.Save(&category).Error; err != nil {
			return fmt.Errorf("save category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category unless a task still references it
func (s *GormStore) DeleteCategory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return notFoundOr(err, "find category")
		}

		var count int64
		if err := tx.Model(&models.Task{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count category tasks: %w", err)
		}
		if count > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

// CountTasksByCategory returns the number of tasks per category ID
func (s *GormStore) CountTasksByCategory(ctx context.Context) (map[uint64]int64, error) {
	var rows []struct {
		CategoryID uint64
		Count      int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

// joinCategories resolves the category of every task on tx, so the pairing
// comes from the same transaction as the task rows.
func joinCategories(tx *gorm.DB, tasks []models.Task) ([]models.TaskWithCategory, error) {
	result := make([]models.TaskWithCategory, 0, len(tasks))
	if len(tasks) == 0 {
		return result, nil
	}

	ids := make([]uint64, 0, len(tasks))
	seen := make(map[uint64]bool, len(tasks))
	for _, task := range tasks {
		if !seen[task.CategoryID] {
			seen[task.CategoryID] = true
			ids = append(ids, task.CategoryID)
		}
	}

	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load task categories: %w", err)
	}
	byID := make(map[uint64]models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	for _, task := range tasks {
		category, ok := byID[task.CategoryID]
		if !ok {
			return nil, fmt.Errorf("%w: task %d references category %d", ErrUnresolvedCategory, task.ID, task.CategoryID)
		}
		result = append(result, models.TaskWithCategory{Task: task, Category: category})
	}
	return result, nil
}

func joinCategory(tx *gorm.DB, task models.Task) (*models.TaskWithCategory, error) {
	joined, err := joinCategories(tx, []models.Task{task})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// GetTask finds a task by ID
func (s *GormStore) GetTask(ctx context.Context, id uint64) (*models.TaskWithCategory, error) {
	var joined *models.TaskWithCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, id).Error; err != nil {
			return notFoundOr(err, "find task")
		}
		var err error
		joined, err = joinCategory(tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// ListTasks returns tasks matching the filter in insertion order
func (s *GormStore) ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskWithCategory, error) {
	var joined []models.TaskWithCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Task{})

		if filter.CategoryID != nil {
			query = query.Scopes(database.ByCategory(*filter.CategoryID))
		}
		if filter.Search != "" {
			query = query.Scopes(database.SearchText(filter.Search))
		}
		if filter.Completed != nil {
			query = query.Scopes(database.ByCompleted(*filter.Completed))
		}

		tasks := []models.Task{}
		if err := query.Order("id ASC").Find(&tasks).Error; err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}

		var err error
		joined, err = joinCategories(tx, tasks)
		return err
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

func ensureCategory(tx *gorm.DB, categoryID uint64) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return ErrUnresolvedCategory
	}
	return nil
}

// CreateTask assigns the next task ID and stores the task
func (s *GormStore) CreateTask(ctx context.Context, task models.Task) (*models.TaskWithCategory, error) {
	task.ID = 0
	var created *models.TaskWithCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, task.CategoryID); err != nil {
			return err
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		var err error
		created, err = joinCategory(tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTask merges the provided fields into an existing task
func (s *GormStore) UpdateTask(ctx context.Context, id uint64, update models.TaskUpdate) (*models.TaskWithCategory, error) {
	var updated *models.TaskWithCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, id).Error; err != nil {
			return notFoundOr(err, "find task")
		}
		update.Apply(&task)
		if err := ensureCategory(tx, task.CategoryID); err != nil {
			return err
		}
		if err := tx.Save(&task).Error; err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		var err error
		updated, err = joinCategory(tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task
func (s *GormStore) DeleteTask(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
