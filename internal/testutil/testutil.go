// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-task-api/internal/database"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database that is closed when the
// test ends. The pool holds a single connection so every query sees the
// same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, NewLogger()))
	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CreateUser inserts a user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project owned by owner.
func CreateProject(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:        name,
		Description: name + " description",
		UserID:      owner.ID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTask inserts a task with the given status in project.
func CreateTask(t *testing.T, db *gorm.DB, title string, project *models.Project, status models.TaskStatus) *models.ProjectTask {
	t.Helper()
	task := &models.ProjectTask{
		Title:       title,
		Description: title + " description",
		DueDate:     time.Now().UTC().AddDate(0, 0, 7),
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		ProjectID:   project.ID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// SetTaskUpdatedAt overwrites a task's UpdatedAt column.
func SetTaskUpdatedAt(t *testing.T, db *gorm.DB, task *models.ProjectTask, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.ProjectTask{}).
		Where("id = ?", task.ID).
		Update("updated_at", at.UTC()).Error)
}
