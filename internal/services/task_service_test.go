package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-task-api/internal/models"
	"github.com/yukikurage/project-task-api/internal/repository"
	"github.com/yukikurage/project-task-api/internal/testutil"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	ctx     context.Context
	now     time.Time
	user    *models.User
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewTaskService(repository.NewUnitOfWork(suite.db))
	suite.now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
	suite.ctx = context.Background()
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice", models.UserRoleUser)
	suite.project = testutil.CreateProject(suite.T(), suite.db, "Website", suite.user)
}

func (suite *TaskServiceTestSuite) newTaskInput(title string) CreateTaskInput {
	return CreateTaskInput{
		Title:       title,
		Description: "Build it",
		DueDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Priority:    models.TaskPriorityHigh,
		ProjectID:   suite.project.ID,
	}
}

func (suite *TaskServiceTestSuite) historyOf(taskID uuid.UUID) []models.TaskHistory {
	var history []models.TaskHistory
	suite.Require().NoError(suite.db.Where("task_id = ?", taskID).Find(&history).Error)
	return history
}

func strPtr(s string) *string { return &s }

func (suite *TaskServiceTestSuite) TestCreateTask_StartsPending() {
	task, err := suite.service.CreateTask(suite.ctx, suite.newTaskInput("Login page"))

	suite.Require().NoError(err)
	assert.NotEqual(suite.T(), uuid.Nil, task.ID)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityHigh, task.Priority)
	assert.Equal(suite.T(), suite.project.ID, task.ProjectID)
	assert.Nil(suite.T(), task.UpdatedAt)

	stored, err := suite.service.GetTaskByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Login page", stored.Title)
	assert.True(suite.T(), stored.DueDate.Equal(task.DueDate))
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownProject() {
	input := suite.newTaskInput("Login page")
	input.ProjectID = uuid.New()

	_, err := suite.service.CreateTask(suite.ctx, input)

	var notFound *NotFoundError
	suite.Require().True(errors.As(err, &notFound))
	assert.Equal(suite.T(), EntityProject, notFound.Entity)
}

func (suite *TaskServiceTestSuite) TestCreateTask_EnforcesLimit() {
	var last *models.ProjectTask
	for i := 1; i <= models.MaxTasksPerProject; i++ {
		task, err := suite.service.CreateTask(suite.ctx, suite.newTaskInput(fmt.Sprintf("Task %d", i)))
		suite.Require().NoError(err, "task %d", i)
		last = task
	}

	_, err := suite.service.CreateTask(suite.ctx, suite.newTaskInput("One too many"))
	suite.Require().Error(err)
	assert.True(suite.T(), errors.Is(err, ErrBusinessRule))
	assert.Equal(suite.T(),
		"Cannot add more tasks. Project has reached the maximum limit of 20 tasks.",
		err.Error())

	var count int64
	suite.db.Model(&models.ProjectTask{}).Where("project_id = ?", suite.project.ID).Count(&count)
	assert.Equal(suite.T(), int64(models.MaxTasksPerProject), count)

	suite.Require().NoError(suite.service.DeleteTask(suite.ctx, last.ID))

	_, err = suite.service.CreateTask(suite.ctx, suite.newTaskInput("Fits again"))
	assert.NoError(suite.T(), err)
}

func (suite *TaskServiceTestSuite) TestGetProjectTasks_OrderedByDueDate() {
	late := suite.newTaskInput("late")
	late.DueDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	early := suite.newTaskInput("early")
	early.DueDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateTask(suite.ctx, late)
	suite.Require().NoError(err)
	_, err = suite.service.CreateTask(suite.ctx, early)
	suite.Require().NoError(err)

	tasks, err := suite.service.GetProjectTasks(suite.ctx, suite.project.ID)

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	assert.Equal(suite.T(), "early", tasks[0].Title)
	assert.Equal(suite.T(), "late", tasks[1].Title)
}

func (suite *TaskServiceTestSuite) TestGetProjectTasks_UnknownProjectIsEmpty() {
	tasks, err := suite.service.GetProjectTasks(suite.ctx, uuid.New())

	suite.Require().NoError(err)
	assert.Empty(suite.T(), tasks)
}

func (suite *TaskServiceTestSuite) TestGetTaskByID_NotFound() {
	missing := uuid.New()

	_, err := suite.service.GetTaskByID(suite.ctx, missing)

	suite.Require().Error(err)
	assert.Equal(suite.T(), fmt.Sprintf("ProjectTask with id '%s' was not found", missing), err.Error())
}

func (suite *TaskServiceTestSuite) TestUpdateTask_TitleOnly() {
	task := testutil.CreateTask(suite.T(), suite.db, "Old", suite.project, models.TaskStatusPending)

	updated, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{
		UserID: suite.user.ID,
		Title:  strPtr("New"),
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "New", updated.Title)
	suite.Require().NotNil(updated.UpdatedAt)
	assert.True(suite.T(), updated.UpdatedAt.Equal(suite.now))

	history := suite.historyOf(task.ID)
	suite.Require().Len(history, 1)
	entry := history[0]
	assert.Equal(suite.T(), ChangeTitle, entry.ChangeDescription)
	assert.Equal(suite.T(), "Old", *entry.PreviousValue)
	assert.Equal(suite.T(), "New", *entry.NewValue)
	assert.Equal(suite.T(), suite.user.ID, entry.UserID)
	assert.True(suite.T(), entry.ChangedAt.Equal(suite.now))

	stored, err := suite.service.GetTaskByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "New", stored.Title)
	assert.Equal(suite.T(), task.Description, stored.Description)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EveryField() {
	task := testutil.CreateTask(suite.T(), suite.db, "Old", suite.project, models.TaskStatusPending)
	previousDue := task.DueDate.Format("2006-01-02")
	due := time.Date(2025, 12, 24, 15, 0, 0, 0, time.UTC)
	status := models.TaskStatusCompleted

	_, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{
		UserID:      suite.user.ID,
		Title:       strPtr("New"),
		Description: strPtr("Rewritten"),
		DueDate:     &due,
		Status:      &status,
	})
	suite.Require().NoError(err)

	byLabel := map[string]models.TaskHistory{}
	for _, h := range suite.historyOf(task.ID) {
		byLabel[h.ChangeDescription] = h
	}
	suite.Require().Len(byLabel, 4)

	assert.Equal(suite.T(), "Rewritten", *byLabel[ChangeDescription].NewValue)
	assert.Equal(suite.T(), previousDue, *byLabel[ChangeDueDate].PreviousValue)
	assert.Equal(suite.T(), "2025-12-24", *byLabel[ChangeDueDate].NewValue)
	assert.Equal(suite.T(), "Pending", *byLabel[ChangeStatus].PreviousValue)
	assert.Equal(suite.T(), "Completed", *byLabel[ChangeStatus].NewValue)

	stored, err := suite.service.GetTaskByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, stored.Status)
	assert.True(suite.T(), stored.DueDate.Equal(due))
}

func (suite *TaskServiceTestSuite) TestUpdateTask_UnchangedValuesWriteNoHistory() {
	task := testutil.CreateTask(suite.T(), suite.db, "Same", suite.project, models.TaskStatusInProgress)
	status := models.TaskStatusInProgress
	due := task.DueDate

	updated, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{
		UserID:  suite.user.ID,
		Title:   strPtr("Same"),
		DueDate: &due,
		Status:  &status,
	})

	suite.Require().NoError(err)
	assert.NotNil(suite.T(), updated.UpdatedAt)
	assert.Empty(suite.T(), suite.historyOf(task.ID))
}

func (suite *TaskServiceTestSuite) TestUpdateTask_MissingTaskReportedFirst() {
	_, err := suite.service.UpdateTask(suite.ctx, uuid.New(), UpdateTaskInput{
		UserID: uuid.New(),
		Title:  strPtr("New"),
	})

	var notFound *NotFoundError
	suite.Require().True(errors.As(err, &notFound))
	assert.Equal(suite.T(), EntityTask, notFound.Entity)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_UnknownUserChangesNothing() {
	task := testutil.CreateTask(suite.T(), suite.db, "Old", suite.project, models.TaskStatusPending)

	_, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{
		UserID: uuid.New(),
		Title:  strPtr("New"),
	})

	var notFound *NotFoundError
	suite.Require().True(errors.As(err, &notFound))
	assert.Equal(suite.T(), EntityUser, notFound.Entity)

	stored, err := suite.service.GetTaskByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Old", stored.Title)
	assert.Nil(suite.T(), stored.UpdatedAt)
	assert.Empty(suite.T(), suite.historyOf(task.ID))
}

func (suite *TaskServiceTestSuite) TestDeleteTask_RemovesCommentsAndHistory() {
	task := testutil.CreateTask(suite.T(), suite.db, "Old", suite.project, models.TaskStatusPending)
	_, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{
		UserID: suite.user.ID,
		Title:  strPtr("New"),
	})
	suite.Require().NoError(err)
	_, err = NewCommentService(repository.NewUnitOfWork(suite.db)).AddComment(suite.ctx, AddCommentInput{
		TaskID:  task.ID,
		UserID:  suite.user.ID,
		Content: "note",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteTask(suite.ctx, task.ID))

	_, err = suite.service.GetTaskByID(suite.ctx, task.ID)
	assert.True(suite.T(), errors.Is(err, ErrNotFound))

	var comments, history int64
	suite.db.Model(&models.TaskComment{}).Count(&comments)
	suite.db.Model(&models.TaskHistory{}).Count(&history)
	assert.Equal(suite.T(), int64(0), comments)
	assert.Equal(suite.T(), int64(0), history)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_NotFound() {
	err := suite.service.DeleteTask(suite.ctx, uuid.New())

	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *TaskServiceTestSuite) TestGetTaskHistory_MostRecentFirst() {
	task := testutil.CreateTask(suite.T(), suite.db, "v1", suite.project, models.TaskStatusPending)

	_, err := suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{UserID: suite.user.ID, Title: strPtr("v2")})
	suite.Require().NoError(err)
	suite.now = suite.now.Add(time.Hour)
	_, err = suite.service.UpdateTask(suite.ctx, task.ID, UpdateTaskInput{UserID: suite.user.ID, Title: strPtr("v3")})
	suite.Require().NoError(err)

	history, err := suite.service.GetTaskHistory(suite.ctx, task.ID)

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	assert.Equal(suite.T(), "v3", *history[0].NewValue)
	assert.Equal(suite.T(), "v2", *history[1].NewValue)
}

func (suite *TaskServiceTestSuite) TestGetTaskHistory_NotFound() {
	_, err := suite.service.GetTaskHistory(suite.ctx, uuid.New())

	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
