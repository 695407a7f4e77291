package models

import "github.com/google/uuid"

type TaskComment struct {
	Base
	TaskID  uuid.UUID `gorm:"type:char(36);not null;index" json:"task_id"`
	UserID  uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	Content string    `gorm:"type:text;not null" json:"content"`

	// Relations
	Task ProjectTask `gorm:"foreignKey:TaskID" json:"-"`
	User User        `gorm:"foreignKey:UserID" json:"-"`
}
