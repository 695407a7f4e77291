package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-task-api/internal/dto"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/testutil"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	apiSuite
	owner *models.User
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	suite.apiSuite.SetupTest()
	suite.owner = testutil.CreateUser(suite.T(), suite.db, "alice", models.UserRoleUser)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	w := suite.perform(http.MethodPost, "/api/projects", map[string]interface{}{
		"name":        "Website",
		"description": "Company website",
		"user_id":     suite.owner.ID,
	})

	suite.Require().Equal(http.StatusCreated, w.Code)
	var project dto.ProjectDTO
	suite.decode(w, &project)
	assert.Equal(suite.T(), "Website", project.Name)
	assert.Equal(suite.T(), suite.owner.ID, project.UserID)
	assert.Equal(suite.T(), int64(0), project.TaskCount)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_ValidationFailure() {
	w := suite.perform(http.MethodPost, "/api/projects", map[string]interface{}{
		"user_id": suite.owner.ID,
	})

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	body := suite.errorOf(w)
	assert.Equal(suite.T(), "INVALID_INPUT", body.Code)
	assert.Equal(suite.T(), "The field 'name' is required.", body.Details["name"])
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MalformedBody() {
	w := suite.perform(http.MethodPost, "/api/projects", `{"name":`)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "INVALID_INPUT", suite.errorOf(w).Code)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_UnknownUser() {
	w := suite.perform(http.MethodPost, "/api/projects", map[string]interface{}{
		"name":    "Website",
		"user_id": uuid.New(),
	})

	suite.Require().Equal(http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NOT_FOUND", suite.errorOf(w).Code)
}

func (suite *ProjectHandlerTestSuite) TestGetUserProjects() {
	project := testutil.CreateProject(suite.T(), suite.db, "Website", suite.owner)
	testutil.CreateTask(suite.T(), suite.db, "a", project, models.TaskStatusPending)

	w := suite.perform(http.MethodGet, "/api/projects/user/"+suite.owner.ID.String(), nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	suite.decode(w, &projects)
	suite.Require().Len(projects, 1)
	assert.Equal(suite.T(), project.ID, projects[0].ID)
	assert.Equal(suite.T(), int64(1), projects[0].TaskCount)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_InvalidID() {
	w := suite.perform(http.MethodGet, "/api/projects/not-a-uuid", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	w := suite.perform(http.MethodGet, "/api/projects/"+uuid.NewString(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_PendingTasks() {
	project := testutil.CreateProject(suite.T(), suite.db, "Website", suite.owner)
	testutil.CreateTask(suite.T(), suite.db, "todo", project, models.TaskStatusPending)

	w := suite.perform(http.MethodDelete, "/api/projects/"+project.ID.String(), nil)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	body := suite.errorOf(w)
	assert.Equal(suite.T(), "INVALID_OPERATION", body.Code)
	assert.Contains(suite.T(), body.Message, "pending tasks")
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_Success() {
	project := testutil.CreateProject(suite.T(), suite.db, "Website", suite.owner)
	testutil.CreateTask(suite.T(), suite.db, "done", project, models.TaskStatusCompleted)

	w := suite.perform(http.MethodDelete, "/api/projects/"+project.ID.String(), nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.perform(http.MethodGet, "/api/projects/"+project.ID.String(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
