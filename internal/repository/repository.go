package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/taskboard-api/internal/models"
)

var (
	// ErrNotFound is returned when no entity has the requested identifier.
	ErrNotFound = errors.New("repository: record not found")
	// ErrCategoryInUse is returned when deleting a category that tasks still reference.
	ErrCategoryInUse = errors.New("repository: category is referenced by tasks")
	// ErrUnresolvedCategory is returned when a task would reference, or is found
	// referencing, a category that does not exist.
	ErrUnresolvedCategory = errors.New("repository: task references a missing category")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("repository: username already taken")
)

// TaskFilter holds filtering options for listing tasks.
// Zero values disable the corresponding filter.
type TaskFilter struct {
	CategoryID *uint64
	// Search matches title or description, case-insensitively.
	Search    string
	Completed *bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetUser finds a user by ID
	GetUser(ctx context.Context, id uint64) (*models.User, error)

	// GetUserByUsername finds a user by username
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateUser assigns the next user ID and stores the user
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// GetCategory finds a category by ID
	GetCategory(ctx context.Context, id uint64) (*models.Category, error)

	// ListCategories returns all categories in insertion order
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory assigns the next category ID and stores the category
	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)

	// UpdateCategory merges the provided fields into an existing category
	UpdateCategory(ctx context.Context, id uint64, update models.CategoryUpdate) (*models.Category, error)

	// DeleteCategory removes a category unless a task still references it
	DeleteCategory(ctx context.Context, id uint64) error

	// CountTasksByCategory returns the number of tasks per category ID
	CountTasksByCategory(ctx context.Context) (map[uint64]int64, error)
}

// TaskRepository defines the interface for task data access.
// Tasks come back joined with their category, resolved in the same read.
type TaskRepository interface {
	// GetTask finds a task by ID
	GetTask(ctx context.Context, id uint64) (*models.TaskWithCategory, error)

	// ListTasks returns tasks matching the filter in insertion order
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskWithCategory, error)

	// CreateTask assigns the next task ID and stores the task.
	// Nothing is stored if the category does not resolve.
	CreateTask(ctx context.Context, task models.Task) (*models.TaskWithCategory, error)

	// UpdateTask merges the provided fields into an existing task.
	// Nothing is stored if the merged category does not resolve.
	UpdateTask(ctx context.Context, id uint64, update models.TaskUpdate) (*models.TaskWithCategory, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id uint64) error
}

// Store is the full entity store used by the services.
type Store interface {
	UserRepository
	CategoryRepository
	TaskRepository
}
