package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateImageRequest struct {
	Title            string `json:"title" validate:"required,notblank,max=1000"`
	ImageSize        string `json:"image_size" validate:"required"`
	ArtStyle         string `json:"art_style,omitempty" validate:"max=100"`
	LightingStyle    string `json:"lighting_style,omitempty" validate:"max=100"`
	MoodStyle        string `json:"mood_style,omitempty" validate:"max=100"`
	NegativeKeywords string `json:"negative_keywords,omitempty" validate:"max=500"`
}

type GenerateImageResponse struct {
	Id      uuid.UUID `json:"id"`
	Image   string    `json:"image"`
	Success bool      `json:"success"`
}

type GeneratedImageResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Image     string    `json:"image"`
	Model     string    `json:"model"`
	Size      string    `json:"size"`
	Saved     bool      `json:"saved"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerateSpeechRequest struct {
	Text string `json:"text" validate:"required,notblank,max=4096"`
	Tone string `json:"tone,omitempty" validate:"max=50"`
}

type GeneratedSpeechResponse struct {
	Id        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Audio     string    `json:"audio"`
	Tone      string    `json:"tone,omitempty"`
	Voice     string    `json:"voice"`
	Saved     bool      `json:"saved"`
	CreatedAt time.Time `json:"created_at"`
}

type ListArtifactsRequest struct {
	Saved  *bool `query:"saved"`
	Limit  int   `query:"limit" validate:"min=0,max=100"`
	Offset int   `query:"offset" validate:"min=0"`
}

type ArtifactPage[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ArtifactResponse carries the artifact after a save-state change; exactly
// one of Image or Speech is set, matching Kind.
type ArtifactResponse struct {
	Kind   string                   `json:"kind"`
	Image  *GeneratedImageResponse  `json:"image,omitempty"`
	Speech *GeneratedSpeechResponse `json:"speech,omitempty"`
}
