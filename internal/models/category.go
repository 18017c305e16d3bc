package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups projects and carries a single display image.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ImageID   *uuid.UUID `gorm:"type:uuid" json:"image_id"`
	Image     *Image     `gorm:"foreignKey:ImageID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
