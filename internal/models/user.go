package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never leaves the domain
// layer through a filtered projection.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Mail         string    `gorm:"size:255;not null;uniqueIndex" json:"mail"`
	Gender       Gender    `gorm:"size:20" json:"gender"`
	Role         Role      `gorm:"size:20;not null;default:'SUPPORTER'" json:"role"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
