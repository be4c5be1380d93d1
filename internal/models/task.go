package models

import (
	"time"
)

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CategoryID  uint64    `gorm:"not null;index" json:"categoryId"`
}

// TaskUpdate carries the fields of a partial task update.
// Nil fields keep their stored value.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	CategoryID  *uint64
}

// Apply merges the provided fields into t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		desc := *u.Description
		t.Description = &desc
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.CategoryID != nil {
		t.CategoryID = *u.CategoryID
	}
}

// TaskWithCategory is a task joined with its category. It is rebuilt on
// every read and never stored.
type TaskWithCategory struct {
	Task
	Category Category `json:"category"`
}
