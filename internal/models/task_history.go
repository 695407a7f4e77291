package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskHistory is an append-only audit entry for a task: one field change
// or one comment.
type TaskHistory struct {
	Base
	TaskID            uuid.UUID `gorm:"type:char(36);not null;index" json:"task_id"`
	UserID            uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	ChangeDescription string    `gorm:"type:varchar(200);not null" json:"change_description"`
	PreviousValue     *string   `gorm:"type:text" json:"previous_value"`
	NewValue          *string   `gorm:"type:text" json:"new_value"`
	ChangedAt         time.Time `gorm:"not null;index" json:"changed_at"`

	// Relations
	Task ProjectTask `gorm:"foreignKey:TaskID" json:"-"`
	User User        `gorm:"foreignKey:UserID" json:"-"`
}

func (TaskHistory) TableName() string {
	return "task_histories"
}

// BeforeCreate stamps ChangedAt in addition to the base fields.
func (h *TaskHistory) BeforeCreate(tx *gorm.DB) error {
	if err := h.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if h.ChangedAt.IsZero() {
		h.ChangedAt = h.CreatedAt
	}
	return nil
}
