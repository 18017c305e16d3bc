package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxProjectImages caps the number of images attached to one project.
const MaxProjectImages = 10

// Project is a crowdfunding campaign owned by its creator.
type Project struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string        `gorm:"size:255;not null" json:"title"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	Status       ProjectStatus `gorm:"size:30;not null;default:'NEEDS_VERIFICATION'" json:"status"`
	MoneyGoal    float64       `gorm:"not null" json:"money_goal"`
	MoneyPledged float64       `gorm:"not null;default:0" json:"money_pledged"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	CreatorID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator      User          `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID   *uuid.UUID    `gorm:"type:uuid;index" json:"category_id"`
	Category     *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Images       []Image       `gorm:"many2many:project_images" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
