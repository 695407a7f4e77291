package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ProjectTask is a unit of work inside a project. ProjectID never changes
// after creation.
type ProjectTask struct {
	Base
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:varchar(2000)" json:"description"`
	DueDate     time.Time    `gorm:"not null;index" json:"due_date"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	ProjectID   uuid.UUID    `gorm:"type:char(36);not null;index" json:"project_id"`

	// Relations
	Project  Project       `gorm:"foreignKey:ProjectID" json:"-"`
	History  []TaskHistory `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []TaskComment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProjectTask) TableName() string {
	return "tasks"
}
