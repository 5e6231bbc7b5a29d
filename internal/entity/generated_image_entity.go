package entity

import (
	"time"

	"github.com/google/uuid"
)

type ImagePromptOptions struct {
	ArtStyle         string `json:"art_style,omitempty"`
	LightingStyle    string `json:"lighting_style,omitempty"`
	MoodStyle        string `json:"mood_style,omitempty"`
	NegativeKeywords string `json:"negative_keywords,omitempty"`
}

type GeneratedImage struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Prompt     string
	Url        string
	StorageKey string
	Model      string
	Size       string
	Options    ImagePromptOptions
	Status     bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (i *GeneratedImage) IsSaved() bool {
	return i.Status
}

func (i *GeneratedImage) MarkSaved(saved bool) {
	i.Status = saved
}
