package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/dto"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
	"github.com/yukikurage/project-task-api/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
	log      *logrus.Logger
}

func NewCommentHandler(comments *services.CommentService, log *logrus.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		log:      log,
	}
}

// AddComment comments on a task
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), req.ToInput())
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// GetTaskComments lists the comments of a task
func (h *CommentHandler) GetTaskComments(c *gin.Context) {
	taskID, ok := uuidParam(c, "taskId")
	if !ok {
		return
	}

	comments, err := h.comments.GetTaskComments(c.Request.Context(), taskID)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}
