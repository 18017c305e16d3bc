package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is one user's offer to support one task. The composite unique
// index enforces the one-application-per-(user, task) invariant at the store,
// so a concurrent duplicate insert fails instead of slipping past the
// read-then-write check in the gate.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Accepted  bool      `gorm:"not null;default:false" json:"accepted"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_task" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_task" json:"task_id"`
	Task      Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
