package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the identity and timestamps shared by every entity.
// UpdatedAt stays nil until the first mutation; services set it explicitly.
type Base struct {
	ID        uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// BeforeCreate assigns an id and creation time when the caller did not.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Touch marks the entity as modified now.
func (b *Base) Touch(now time.Time) {
	t := now.UTC()
	b.UpdatedAt = &t
}
