package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/database"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithTasks finds a project by ID and preloads its tasks
func (r *GormProjectRepository) FindByIDWithTasks(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Tasks").
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUser lists a user's projects newest first, each with its task count
func (r *GormProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	if len(projects) == 0 {
		return []ProjectSummary{}, nil
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var counts []struct {
		ProjectID uuid.UUID
		Total     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectTask{}).
		Select("project_id, COUNT(*) AS total").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byProject := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byProject[c.ProjectID] = c.Total
	}

	summaries := make([]ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = ProjectSummary{Project: p, TaskCount: byProject[p.ID]}
	}
	return summaries, nil
}

// CountTasks counts the tasks of a project
func (r *GormProjectRepository) CountTasks(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTask{}).
		Scopes(database.ByProject(projectID)).
		Count(&count).Error
	return count, err
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uuid.UUID
		if err := tx.Model(&models.ProjectTask{}).
			Scopes(database.ByProject(id)).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := deleteTaskChildren(tx, taskIDs); err != nil {
				return err
			}
			if err := tx.Scopes(database.ByIDs(taskIDs)).Delete(&models.ProjectTask{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

// deleteTaskChildren removes the comments and history of the given tasks
func deleteTaskChildren(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if err := tx.Scopes(database.ByTasks(taskIDs)).Delete(&models.TaskComment{}).Error; err != nil {
		return err
	}
	return tx.Scopes(database.ByTasks(taskIDs)).Delete(&models.TaskHistory{}).Error
}
