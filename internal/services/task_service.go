package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidCategoryReference means a task points at a category that
	// does not exist. It is reported as an internal fault on every path.
	ErrInvalidCategoryReference = errors.New("invalid category ID")
)

// TaskService handles task business logic
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{
		store: store,
	}
}

// ListTasksInput represents filters for listing tasks.
// CategoryID takes precedence over Search; Completed applies to either.
type ListTasksInput struct {
	CategoryID *uint64
	Search     string
	Completed  *bool
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     time.Time
	Completed   bool
	CategoryID  uint64
}

// ListTasks returns tasks joined with their categories
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.TaskWithCategory, error) {
	filter := repository.TaskFilter{Completed: input.Completed}
	switch {
	case input.CategoryID != nil:
		filter.CategoryID = input.CategoryID
	case input.Search != "":
		filter.Search = input.Search
	}

	tasks, err := s.store.ListTasks(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnresolvedCategory) {
			return nil, invalidReference(err)
		}
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// TasksByCategory returns the tasks of one category
func (s *TaskService) TasksByCategory(ctx context.Context, categoryID uint64) ([]models.TaskWithCategory, error) {
	return s.ListTasks(ctx, ListTasksInput{CategoryID: &categoryID})
}

// SearchTasks returns tasks whose title or description contains query, ignoring case
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]models.TaskWithCategory, error) {
	return s.ListTasks(ctx, ListTasksInput{Search: query})
}

// GetTask returns a task joined with its category
func (s *TaskService) GetTask(ctx context.Context, id uint64) (*models.TaskWithCategory, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrUnresolvedCategory):
			return nil, invalidReference(err)
		default:
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
	}
	return task, nil
}

// CreateTask stores a task after checking that its category exists
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.TaskWithCategory, error) {
	task, err := s.store.CreateTask(ctx, models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Completed:   input.Completed,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnresolvedCategory) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCategoryReference, input.CategoryID)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask merges the provided fields into a task
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, update models.TaskUpdate) (*models.TaskWithCategory, error) {
	task, err := s.store.UpdateTask(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrUnresolvedCategory):
			return nil, fmt.Errorf("%w: task %d", ErrInvalidCategoryReference, id)
		default:
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}
	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// invalidReference reports a stored task whose category no longer resolves
func invalidReference(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidCategoryReference, err)
}
