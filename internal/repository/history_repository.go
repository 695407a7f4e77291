package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/database"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHistoryRepository is a GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts history entries
func (r *GormHistoryRepository) Append(ctx context.Context, entries ...*models.TaskHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&entries).Error
}

// ListByTask lists the history of a task, most recent first
func (r *GormHistoryRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskHistory, error) {
	var history []models.TaskHistory
	if err := r.db.WithContext(ctx).
		Scopes(database.ByTask(taskID)).
		Order("changed_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
