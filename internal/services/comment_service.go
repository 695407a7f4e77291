package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/repository"
)

// CommentService handles task comments
type CommentService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(uow repository.UnitOfWork) *CommentService {
	return &CommentService{
		uow: uow,
		now: time.Now,
	}
}

// AddCommentInput represents input for commenting on a task
type AddCommentInput struct {
	TaskID  uuid.UUID
	UserID  uuid.UUID
	Content string
}

// AddComment stores a comment and a matching "Comment added" history entry
// in one transaction. Nothing is written when the task or the user is
// missing.
func (s *CommentService) AddComment(ctx context.Context, input AddCommentInput) (*models.TaskComment, error) {
	comment := &models.TaskComment{
		TaskID:  input.TaskID,
		UserID:  input.UserID,
		Content: input.Content,
	}

	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if _, err := tx.Tasks().FindByID(ctx, input.TaskID); err != nil {
			return lookupError(err, EntityTask, input.TaskID)
		}
		if _, err := tx.Users().FindByID(ctx, input.UserID); err != nil {
			return lookupError(err, EntityUser, input.UserID)
		}

		now := s.now().UTC()
		comment.CreatedAt = now

		if err := tx.Comments().Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		content := input.Content
		entry := &models.TaskHistory{
			TaskID:            input.TaskID,
			UserID:            input.UserID,
			ChangeDescription: ChangeCommentAdded,
			NewValue:          &content,
			ChangedAt:         now,
		}
		if err := tx.History().Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to record comment history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// GetTaskComments returns the comments of a task, oldest first
func (s *CommentService) GetTaskComments(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error) {
	if _, err := s.uow.Tasks().FindByID(ctx, taskID); err != nil {
		return nil, lookupError(err, EntityTask, taskID)
	}

	comments, err := s.uow.Comments().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
