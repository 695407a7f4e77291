package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns every user, oldest first
	List(ctx context.Context) ([]models.User, error)
}

// ProjectSummary is a project annotated with its current task count
type ProjectSummary struct {
	Project   models.Project
	TaskCount int64
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID without its tasks
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// FindByIDWithTasks finds a project by ID and loads its tasks
	FindByIDWithTasks(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// ListByUser lists the projects owned by a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error)

	// CountTasks counts the tasks of a project
	CountTasks(ctx context.Context, projectID uuid.UUID) (int64, error)

	// Delete deletes a project together with its tasks, comments and history
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.ProjectTask) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProjectTask, error)

	// ListByProject lists the tasks of a project by due date ascending
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectTask, error)

	// Update persists the mutable fields of a task
	Update(ctx context.Context, task *models.ProjectTask) error

	// Delete deletes a task together with its comments and history
	Delete(ctx context.Context, id uuid.UUID) error

	// CountCompletedByOwner counts completed tasks updated within [from, to],
	// keyed by the owner of the task's project
	CountCompletedByOwner(ctx context.Context, from, to time.Time) (map[uuid.UUID]int64, error)
}

// CommentRepository defines the interface for task comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.TaskComment) error

	// ListByTask lists the comments of a task, oldest first
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error)
}

// HistoryRepository defines the interface for task history data access.
// History is append-only.
type HistoryRepository interface {
	// Append inserts history entries; no entries is a no-op
	Append(ctx context.Context, entries ...*models.TaskHistory) error

	// ListByTask lists the history of a task, most recent first
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskHistory, error)
}

// UnitOfWork groups the repositories over one connection and opens
// transactional boundaries around batches of writes.
type UnitOfWork interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	Comments() CommentRepository
	History() HistoryRepository

	// Transaction runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error
}
