package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// TaskDTO represents a task joined with its category in API responses
type TaskDTO struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	DueDate     time.Time   `json:"dueDate"`
	Completed   bool        `json:"completed"`
	CategoryID  uint64      `json:"categoryId"`
	Category    CategoryDTO `json:"category"`
}

// ToTaskDTO converts a joined task to TaskDTO
func ToTaskDTO(task models.TaskWithCategory) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CategoryID:  task.CategoryID,
		Category:    ToCategoryDTO(task.Category),
	}
}

// ToTaskDTOs converts joined tasks; the result is never nil so it encodes as []
func ToTaskDTOs(tasks []models.TaskWithCategory) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
