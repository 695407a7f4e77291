package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/database"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.ProjectTask) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProjectTask, error) {
	var task models.ProjectTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists the tasks of a project ordered by due date
func (r *GormTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectTask, error) {
	var tasks []models.ProjectTask
	if err := r.db.WithContext(ctx).
		Scopes(database.ByProject(projectID)).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the mutable columns of a task. ProjectID and CreatedAt are
// never written.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.ProjectTask) error {
	return r.db.WithContext(ctx).
		Model(task).
		Select("Title", "Description", "DueDate", "Status", "Priority", "UpdatedAt").
		Updates(task).Error
}

// Delete deletes a task with its comments and history
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTaskChildren(tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.ProjectTask{}).Error
	})
}

// CountCompletedByOwner counts completed tasks whose last update falls
// within [from, to], grouped by the owner of the task's project
func (r *GormTaskRepository) CountCompletedByOwner(ctx context.Context, from, to time.Time) (map[uuid.UUID]int64, error) {
	var rows []struct {
		UserID    uuid.UUID
		Completed int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.ProjectTask{}).
		Select("projects.user_id AS user_id, COUNT(tasks.id) AS completed").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.status = ?", models.TaskStatusCompleted).
		Where("tasks.updated_at >= ? AND tasks.updated_at <= ?", from.UTC(), to.UTC()).
		Group("projects.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Completed
	}
	return counts, nil
}
