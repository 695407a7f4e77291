package models

import "github.com/google/uuid"

// MaxTasksPerProject caps the number of tasks a single project may hold.
const MaxTasksPerProject = 20

type Project struct {
	Base
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`

	// Relations
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Tasks []ProjectTask `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// CanAddTask reports whether a project currently holding taskCount tasks
// can accept one more.
func (p *Project) CanAddTask(taskCount int64) bool {
	return taskCount < MaxTasksPerProject
}

// HasPendingTasks reports whether any loaded task is still pending. Tasks
// must have been loaded with the project.
func (p *Project) HasPendingTasks() bool {
	for _, t := range p.Tasks {
		if t.Status == TaskStatusPending {
			return true
		}
	}
	return false
}
