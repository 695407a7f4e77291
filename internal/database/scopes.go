package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByIDs restricts a query to the given primary keys.
func ByIDs(ids []uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}

// ByTasks restricts a query on a task child table to several tasks.
func ByTasks(taskIDs []uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("task_id IN ?", taskIDs)
	}
}

// ByTask restricts a query on a task child table to one task.
func ByTask(taskID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("task_id = ?", taskID)
	}
}

// ByProject restricts a task query to one project.
func ByProject(projectID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ?", projectID)
	}
}
