package repository

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yukikurage/taskboard-api/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps every entity in process memory. Identifiers come from
// per-kind counters that start at 1 and are never reused.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[uint64]models.User
	categories map[uint64]models.Category
	tasks      map[uint64]models.Task

	nextUserID     uint64
	nextCategoryID uint64
	nextTaskID     uint64
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[uint64]models.User),
		categories:     make(map[uint64]models.Category),
		tasks:          make(map[uint64]models.Task),
		nextUserID:     1,
		nextCategoryID: 1,
		nextTaskID:     1,
	}
}

// sortedIDs returns the keys of m in ascending order, which is insertion
// order because identifiers only grow.
func sortedIDs[V any](m map[uint64]V) []uint64 {
	return slices.Sorted(maps.Keys(m))
}

// GetUser finds a user by ID
func (s *MemoryStore) GetUser(_ context.Context, id uint64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetUserByUsername finds a user by username
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if user := s.users[id]; user.Username == username {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser assigns the next user ID and stores the user
func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, ErrUsernameTaken
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = user
	return &user, nil
}

func matchesTaskFilter(task models.Task, filter TaskFilter) bool {
	if filter.CategoryID != nil && task.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.Completed != nil && task.Completed != *filter.Completed {
		return false
	}
	if filter.Search != "" {
		query := strings.ToLower(filter.Search)
		inTitle := strings.Contains(strings.ToLower(task.Title), query)
		inDescription := task.Description != nil && strings.Contains(strings.ToLower(*task.Description), query)
		if !inTitle && !inDescription {
			return false
		}
	}
	return true
}
