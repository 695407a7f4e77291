package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/dto"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
	"github.com/yukikurage/project-task-api/internal/services"
)

type TaskHandler struct {
	tasks *services.TaskService
	log   *logrus.Logger
}

func NewTaskHandler(tasks *services.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log,
	}
}

// GetProjectTasks lists the tasks of a project by due date
func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.tasks.GetProjectTasks(c.Request.Context(), projectID)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), req.ToInput())
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task and records its history
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, req.ToInput())
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTaskHistory returns the change history of a task
func (h *TaskHandler) GetTaskHistory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	history, err := h.tasks.GetTaskHistory(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskHistoryDTOs(history))
}
