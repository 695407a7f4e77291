package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/constants"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/repository"
)

// History labels written by UpdateTask and AddComment
const (
	ChangeTitle        = "Title updated"
	ChangeDescription  = "Description updated"
	ChangeDueDate      = "Due date updated"
	ChangeStatus       = "Status updated"
	ChangeCommentAdded = "Comment added"
)

// TaskService handles task business logic
type TaskService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(uow repository.UnitOfWork) *TaskService {
	return &TaskService{
		uow: uow,
		now: time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.TaskPriority
	ProjectID   uuid.UUID
}

// UpdateTaskInput represents a partial update. Nil fields are left
// unchanged; UserID is the actor the history is attributed to.
type UpdateTaskInput struct {
	UserID      uuid.UUID
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.TaskStatus
}

// GetProjectTasks returns the tasks of a project ordered by due date
func (s *TaskService) GetProjectTasks(ctx context.Context, projectID uuid.UUID) ([]models.ProjectTask, error) {
	tasks, err := s.uow.Tasks().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTaskByID returns a single task
func (s *TaskService) GetTaskByID(ctx context.Context, taskID uuid.UUID) (*models.ProjectTask, error) {
	task, err := s.uow.Tasks().FindByID(ctx, taskID)
	if err != nil {
		return nil, lookupError(err, EntityTask, taskID)
	}
	return task, nil
}

// CreateTask adds a pending task to a project that is below the task limit
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.ProjectTask, error) {
	task := &models.ProjectTask{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate.UTC(),
		Status:      models.TaskStatusPending,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
	}

	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		project, err := tx.Projects().FindByID(ctx, input.ProjectID)
		if err != nil {
			return lookupError(err, EntityProject, input.ProjectID)
		}

		count, err := tx.Projects().CountTasks(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if !project.CanAddTask(count) {
			return NewBusinessRuleError("Cannot add more tasks. Project has reached the maximum limit of %d tasks.", models.MaxTasksPerProject)
		}

		if err := tx.Tasks().Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update and records one history entry per
// field whose value actually changed. The task and its history commit
// together.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uuid.UUID, input UpdateTaskInput) (*models.ProjectTask, error) {
	var updated *models.ProjectTask

	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		task, err := tx.Tasks().FindByID(ctx, taskID)
		if err != nil {
			return lookupError(err, EntityTask, taskID)
		}

		if _, err := tx.Users().FindByID(ctx, input.UserID); err != nil {
			return lookupError(err, EntityUser, input.UserID)
		}

		now := s.now().UTC()
		changes := applyTaskChanges(task, input, now)
		task.Touch(now)

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if err := tx.History().Append(ctx, changes...); err != nil {
			return fmt.Errorf("failed to record task history: %w", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTask deletes a task along with its comments and history
func (s *TaskService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if _, err := tx.Tasks().FindByID(ctx, taskID); err != nil {
			return lookupError(err, EntityTask, taskID)
		}

		if err := tx.Tasks().Delete(ctx, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// GetTaskHistory returns the history of a task, most recent first
func (s *TaskService) GetTaskHistory(ctx context.Context, taskID uuid.UUID) ([]models.TaskHistory, error) {
	if _, err := s.uow.Tasks().FindByID(ctx, taskID); err != nil {
		return nil, lookupError(err, EntityTask, taskID)
	}

	history, err := s.uow.History().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}
	return history, nil
}

// applyTaskChanges mutates task with the supplied fields of input and
// returns a history entry for each value that differs.
func applyTaskChanges(task *models.ProjectTask, input UpdateTaskInput, now time.Time) []*models.TaskHistory {
	var changes []*models.TaskHistory

	record := func(label, previous, next string) {
		changes = append(changes, &models.TaskHistory{
			TaskID:            task.ID,
			UserID:            input.UserID,
			ChangeDescription: label,
			PreviousValue:     &previous,
			NewValue:          &next,
			ChangedAt:         now,
		})
	}

	if input.Title != nil && *input.Title != task.Title {
		record(ChangeTitle, task.Title, *input.Title)
		task.Title = *input.Title
	}

	if input.Description != nil && *input.Description != task.Description {
		record(ChangeDescription, task.Description, *input.Description)
		task.Description = *input.Description
	}

	if input.DueDate != nil && !input.DueDate.Equal(task.DueDate) {
		due := input.DueDate.UTC()
		record(ChangeDueDate, formatDate(task.DueDate), formatDate(due))
		task.DueDate = due
	}

	if input.Status != nil && *input.Status != task.Status {
		record(ChangeStatus, string(task.Status), string(*input.Status))
		task.Status = *input.Status
	}

	return changes
}

func formatDate(t time.Time) string {
	return t.UTC().Format(constants.HistoryDateLayout)
}
