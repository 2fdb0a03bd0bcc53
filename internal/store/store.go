package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"conbi/internal/models"
)

// Store is the narrow adapter every UI component talks to. All reads and
// writes are scoped to a user id so a row can never leak across accounts.
type Store struct {
	db *gorm.DB
}

// New wraps an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListTasks returns all tasks for a user, newest first.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a task and fills in its server-assigned id.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// UpdateTask rewrites the editable fields of an existing task, keyed by id
// and owner. DueDate is written even when nil so a cleared date persists as
// NULL rather than being skipped.
func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("title", "description", "status", "priority", "due_date").
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
		})
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task #%d not found", task.ID)
	}
	return nil
}

// DeleteTask removes a task and its category associations.
func (s *Store) DeleteTask(ctx context.Context, taskID uint, userID string) error {
	db := s.db.WithContext(ctx)

	res := db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task #%d not found", taskID)
	}

	if err := db.Where("task_id = ?", taskID).Delete(&models.TaskCategory{}).Error; err != nil {
		return fmt.Errorf("delete task categories: %w", err)
	}
	return nil
}

// ListCategories returns all categories for a user ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a category and fills in its server-assigned id.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// TaskCategoryIDs returns the ids of the categories currently attached to a
// task.
func (s *Store) TaskCategoryIDs(ctx context.Context, taskID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.TaskCategory{}).
		Where("task_id = ?", taskID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list task categories: %w", err)
	}
	return ids, nil
}

// ReplaceTaskCategories rewrites a task's category set to exactly the given
// ids. The delete and insert run in one transaction, so a failure can never
// strand the task with a half-written set.
func (s *Store) ReplaceTaskCategories(ctx context.Context, taskID uint, categoryIDs []uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		rows := make([]models.TaskCategory, 0, len(categoryIDs))
		seen := make(map[uint]bool, len(categoryIDs))
		for _, id := range categoryIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, models.TaskCategory{TaskID: taskID, CategoryID: id})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("replace task categories: %w", err)
	}
	return nil
}

// CreateProfile writes the user-facing account record at sign-up.
func (s *Store) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}
