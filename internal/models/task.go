package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work supporters can apply for; it belongs to a project.
type Task struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	SupporterGoal int64     `gorm:"not null" json:"supporter_goal"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project       Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
