package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GeneratedImage struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_generated_images_user_created,priority:1"`
	Title      string         `gorm:"type:text;not null"`
	Prompt     string         `gorm:"type:text;not null"`
	Url        string         `gorm:"type:text;not null"`
	StorageKey string         `gorm:"type:varchar(255);not null"`
	Model      string         `gorm:"type:varchar(50);not null"`
	Size       string         `gorm:"type:varchar(20);not null"`
	Options    datatypes.JSON `gorm:"type:jsonb"`
	Status     bool           `gorm:"not null;default:false"` // false = unsaved, true = saved
	CreatedAt  time.Time      `gorm:"autoCreateTime;index:idx_generated_images_user_created,priority:2"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (GeneratedImage) TableName() string {
	return "generated_images"
}
