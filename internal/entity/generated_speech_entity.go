package entity

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedSpeech struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Text       string
	Url        string
	StorageKey string
	Tone       string
	Voice      string
	Status     bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (s *GeneratedSpeech) IsSaved() bool {
	return s.Status
}

func (s *GeneratedSpeech) MarkSaved(saved bool) {
	s.Status = saved
}
