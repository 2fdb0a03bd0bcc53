package models

import (
	"time"
)

// Task statuses and priorities are stored as plain strings so rows stay
// readable with any sqlite tooling.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a user-owned unit of work.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      string     `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"default:pending" json:"status"`  // pending, in_progress, completed
	Priority    string     `gorm:"default:medium" json:"priority"` // low, medium, high
	DueDate     *time.Time `json:"due_date"`

	// Relationships
	Categories []Category `gorm:"many2many:task_categories;" json:"categories"`
}

// Category is a named, colored label a user can attach to any number of tasks.
// Categories are append-only from the UI: created ad hoc, never edited.
type Category struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Color  string `json:"color"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_categories;" json:"-"`
}

// TaskCategory is the join table for the many-to-many relationship.
// A row's existence means "this task carries this category"; there is no
// identity beyond the pair.
type TaskCategory struct {
	TaskID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}
