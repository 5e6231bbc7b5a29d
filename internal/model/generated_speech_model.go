package model

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedSpeech struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index:idx_generated_speeches_user_created,priority:1"`
	Text       string    `gorm:"type:text;not null"`
	Url        string    `gorm:"type:text;not null"`
	StorageKey string    `gorm:"type:varchar(255);not null"`
	Tone       string    `gorm:"type:varchar(30)"`
	Voice      string    `gorm:"type:varchar(30);not null"`
	Status     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_generated_speeches_user_created,priority:2"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (GeneratedSpeech) TableName() string {
	return "generated_speeches"
}
