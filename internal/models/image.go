package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is an uploaded file referenced by extension; the binary itself lives
// on disk under the configured upload directory, keyed by id.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Extension string    `gorm:"size:10;not null" json:"extension"`
	Projects  []Project `gorm:"many2many:project_images" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
