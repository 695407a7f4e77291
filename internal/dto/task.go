package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/services"
)

// CreateTaskRequest is the body of POST /api/tasks. New tasks always start
// as Pending, so no status is accepted.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=200"`
	Description string              `json:"description" binding:"max=2000"`
	DueDate     time.Time           `json:"due_date" binding:"required"`
	Priority    models.TaskPriority `json:"priority" binding:"required,task_priority"`
	ProjectID   uuid.UUID           `json:"project_id" binding:"required"`
}

// ToInput converts the request into service input
func (r CreateTaskRequest) ToInput() services.CreateTaskInput {
	return services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		ProjectID:   r.ProjectID,
	}
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id. Omitted fields are
// left unchanged.
type UpdateTaskRequest struct {
	UserID      uuid.UUID          `json:"user_id" binding:"required"`
	Title       *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time         `json:"due_date"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,task_status"`
}

// ToInput converts the request into service input
func (r UpdateTaskRequest) ToInput() services.UpdateTaskInput {
	return services.UpdateTaskInput{
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      r.Status,
	}
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     time.Time           `json:"due_date"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	ProjectID   uuid.UUID           `json:"project_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at"`
}

// TaskHistoryDTO represents one history entry in API responses
type TaskHistoryDTO struct {
	ID                uuid.UUID `json:"id"`
	TaskID            uuid.UUID `json:"task_id"`
	UserID            uuid.UUID `json:"user_id"`
	ChangeDescription string    `json:"change_description"`
	PreviousValue     *string   `json:"previous_value"`
	NewValue          *string   `json:"new_value"`
	ChangedAt         time.Time `json:"changed_at"`
}

// Conversion functions

// ToTaskDTO converts a ProjectTask model to TaskDTO
func ToTaskDTO(task models.ProjectTask) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		Priority:    task.Priority,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.ProjectTask) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToTaskHistoryDTOs converts a slice of history entries
func ToTaskHistoryDTOs(history []models.TaskHistory) []TaskHistoryDTO {
	items := make([]TaskHistoryDTO, len(history))
	for i, h := range history {
		items[i] = TaskHistoryDTO{
			ID:                h.ID,
			TaskID:            h.TaskID,
			UserID:            h.UserID,
			ChangeDescription: h.ChangeDescription,
			PreviousValue:     h.PreviousValue,
			NewValue:          h.NewValue,
			ChangedAt:         h.ChangedAt,
		}
	}
	return items
}
