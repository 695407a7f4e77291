package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/dto"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
	"github.com/yukikurage/project-task-api/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
	log      *logrus.Logger
}

func NewProjectHandler(projects *services.ProjectService, log *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		log:      log,
	}
}

// GetUserProjects lists the projects owned by a user
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	projects, err := h.projects.GetUserProjects(c.Request.Context(), userID)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a single project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProjectByID(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), req.ToInput())
	if err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project without pending tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), id); err != nil {
		apierrors.RespondWithServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
