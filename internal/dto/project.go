package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/repository"
	"github.com/yukikurage/project-task-api/internal/services"
)

// CreateProjectRequest is the body of POST /api/projects
type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=1000"`
	UserID      uuid.UUID `json:"user_id" binding:"required"`
}

// ToInput converts the request into service input
func (r CreateProjectRequest) ToInput() services.CreateProjectInput {
	return services.CreateProjectInput{
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
	}
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UserID      uuid.UUID  `json:"user_id"`
	TaskCount   int64      `json:"task_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ToProjectDTO converts a project summary to ProjectDTO
func ToProjectDTO(summary repository.ProjectSummary) ProjectDTO {
	return ProjectDTO{
		ID:          summary.Project.ID,
		Name:        summary.Project.Name,
		Description: summary.Project.Description,
		UserID:      summary.Project.UserID,
		TaskCount:   summary.TaskCount,
		CreatedAt:   summary.Project.CreatedAt,
		UpdatedAt:   summary.Project.UpdatedAt,
	}
}

// ToProjectDTOs converts project summaries to a list of ProjectDTO
func ToProjectDTOs(summaries []repository.ProjectSummary) []ProjectDTO {
	items := make([]ProjectDTO, len(summaries))
	for i, summary := range summaries {
		items[i] = ToProjectDTO(summary)
	}
	return items
}
