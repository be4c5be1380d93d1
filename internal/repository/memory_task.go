package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// cloneTask copies t so callers never share the description pointer with the store.
func cloneTask(t models.Task) models.Task {
	if t.Description != nil {
		desc := *t.Description
		t.Description = &desc
	}
	return t
}

// joinLocked pairs a copy of task with its category. Callers hold s.mu.
func (s *MemoryStore) joinLocked(task models.Task) (models.TaskWithCategory, error) {
	category, ok := s.categories[task.CategoryID]
	if !ok {
		return models.TaskWithCategory{}, fmt.Errorf("%w: task %d references category %d", ErrUnresolvedCategory, task.ID, task.CategoryID)
	}
	return models.TaskWithCategory{Task: cloneTask(task), Category: category}, nil
}

// GetTask finds a task by ID
func (s *MemoryStore) GetTask(_ context.Context, id uint64) (*models.TaskWithCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	joined, err := s.joinLocked(task)
	if err != nil {
		return nil, err
	}
	return &joined, nil
}

// ListTasks returns tasks matching the filter in insertion order
func (s *MemoryStore) ListTasks(_ context.Context, filter TaskFilter) ([]models.TaskWithCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []models.TaskWithCategory{}
	for _, id := range sortedIDs(s.tasks) {
		task := s.tasks[id]
		if !matchesTaskFilter(task, filter) {
			continue
		}
		joined, err := s.joinLocked(task)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, joined)
	}
	return tasks, nil
}

// CreateTask assigns the next task ID and stores the task
func (s *MemoryStore) CreateTask(_ context.Context, task models.Task) (*models.TaskWithCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[task.CategoryID]; !ok {
		return nil, ErrUnresolvedCategory
	}

	task = cloneTask(task)
	task.ID = s.nextTaskID
	s.nextTaskID++
	s.tasks[task.ID] = task

	created, err := s.joinLocked(task)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask merges the provided fields into an existing task
func (s *MemoryStore) UpdateTask(_ context.Context, id uint64, update models.TaskUpdate) (*models.TaskWithCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	task = cloneTask(task)
	update.Apply(&task)
	if _, ok := s.categories[task.CategoryID]; !ok {
		return nil, ErrUnresolvedCategory
	}
	s.tasks[id] = task

	updated, err := s.joinLocked(task)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task
func (s *MemoryStore) DeleteTask(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
