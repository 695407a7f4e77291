package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/services"
)

// CreateCommentRequest is the body of POST /api/comments
type CreateCommentRequest struct {
	TaskID  uuid.UUID `json:"task_id" binding:"required"`
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Content string    `json:"content" binding:"required,min=1,max=5000"`
}

// ToInput converts the request into service input
func (r CreateCommentRequest) ToInput() services.AddCommentInput {
	return services.AddCommentInput{
		TaskID:  r.TaskID,
		UserID:  r.UserID,
		Content: r.Content,
	}
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommentDTO converts a TaskComment model to CommentDTO
func ToCommentDTO(comment models.TaskComment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.TaskComment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}
