package database

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/gorm"
)

type compositeIndex struct {
	model   interface{}
	table   string
	name    string
	columns []string
}

// compositeIndexes back the hot queries that single-column tags do not cover.
var compositeIndexes = []compositeIndex{
	// Projects by owner, newest first
	{&models.Project{}, "projects", "idx_projects_user_created", []string{"user_id", "created_at"}},

	// Task listing by due date and the pending-task guard
	{&models.ProjectTask{}, "tasks", "idx_tasks_project_due", []string{"project_id", "due_date"}},
	{&models.ProjectTask{}, "tasks", "idx_tasks_project_status", []string{"project_id", "status"}},

	// Performance report window scan
	{&models.ProjectTask{}, "tasks", "idx_tasks_status_updated", []string{"status", "updated_at"}},

	// Timelines
	{&models.TaskHistory{}, "task_histories", "idx_task_histories_task_changed", []string{"task_id", "changed_at"}},
	{&models.TaskComment{}, "task_comments", "idx_task_comments_task_created", []string{"task_id", "created_at"}},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *logrus.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{
			"index": idx.name,
			"table": idx.table,
		}).Info("Created index")
	}

	return nil
}
