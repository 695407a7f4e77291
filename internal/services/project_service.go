package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/repository"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	uow repository.UnitOfWork
}

// NewProjectService creates a new ProjectService.
func NewProjectService(uow repository.UnitOfWork) *ProjectService {
	return &ProjectService{uow: uow}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	UserID      uuid.UUID
}

// GetUserProjects returns the projects owned by userID, newest first. An
// unknown user simply owns nothing.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]repository.ProjectSummary, error) {
	projects, err := s.uow.Projects().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectByID returns a project with its task count.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID uuid.UUID) (*repository.ProjectSummary, error) {
	project, err := s.uow.Projects().FindByIDWithTasks(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, EntityProject, projectID)
	}

	return &repository.ProjectSummary{
		Project:   *project,
		TaskCount: int64(len(project.Tasks)),
	}, nil
}

// CreateProject creates a project for an existing user.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*repository.ProjectSummary, error) {
	if _, err := s.uow.Users().FindByID(ctx, input.UserID); err != nil {
		return nil, lookupError(err, EntityUser, input.UserID)
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		UserID:      input.UserID,
	}

	if err := s.uow.Projects().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &repository.ProjectSummary{Project: *project, TaskCount: 0}, nil
}

// DeleteProject removes a project and everything under it. Projects that
// still have pending tasks cannot be deleted.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		project, err := tx.Projects().FindByIDWithTasks(ctx, projectID)
		if err != nil {
			return lookupError(err, EntityProject, projectID)
		}

		if project.HasPendingTasks() {
			return NewBusinessRuleError("Cannot delete project with pending tasks. Please complete or remove all pending tasks first.")
		}

		if err := tx.Projects().Delete(ctx, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}
