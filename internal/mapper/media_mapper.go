package mapper

import (
	"encoding/json"
	"time"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/model"

	"gorm.io/datatypes"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Image Mappers

func (m *MediaMapper) GeneratedImageToEntity(i *model.GeneratedImage) *entity.GeneratedImage {
	if i == nil {
		return nil
	}

	var options entity.ImagePromptOptions
	if len(i.Options) > 0 {
		// Options are informational; a malformed blob leaves them empty.
		_ = json.Unmarshal(i.Options, &options)
	}

	return &entity.GeneratedImage{
		Id:         i.Id,
		UserId:     i.UserId,
		Title:      i.Title,
		Prompt:     i.Prompt,
		Url:        i.Url,
		StorageKey: i.StorageKey,
		Model:      i.Model,
		Size:       i.Size,
		Options:    options,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  optionalTime(i.UpdatedAt),
	}
}

func (m *MediaMapper) GeneratedImageToModel(i *entity.GeneratedImage) *model.GeneratedImage {
	if i == nil {
		return nil
	}

	options, _ := json.Marshal(i.Options)

	return &model.GeneratedImage{
		Id:         i.Id,
		UserId:     i.UserId,
		Title:      i.Title,
		Prompt:     i.Prompt,
		Url:        i.Url,
		StorageKey: i.StorageKey,
		Model:      i.Model,
		Size:       i.Size,
		Options:    datatypes.JSON(options),
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  derefTime(i.UpdatedAt),
	}
}

func (m *MediaMapper) GeneratedImagesToEntities(images []*model.GeneratedImage) []*entity.GeneratedImage {
	entities := make([]*entity.GeneratedImage, len(images))
	for i, img := range images {
		entities[i] = m.GeneratedImageToEntity(img)
	}
	return entities
}

// Speech Mappers

func (m *MediaMapper) GeneratedSpeechToEntity(s *model.GeneratedSpeech) *entity.GeneratedSpeech {
	if s == nil {
		return nil
	}
	return &entity.GeneratedSpeech{
		Id:         s.Id,
		UserId:     s.UserId,
		Text:       s.Text,
		Url:        s.Url,
		StorageKey: s.StorageKey,
		Tone:       s.Tone,
		Voice:      s.Voice,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  optionalTime(s.UpdatedAt),
	}
}

func (m *MediaMapper) GeneratedSpeechToModel(s *entity.GeneratedSpeech) *model.GeneratedSpeech {
	if s == nil {
		return nil
	}
	return &model.GeneratedSpeech{
		Id:         s.Id,
		UserId:     s.UserId,
		Text:       s.Text,
		Url:        s.Url,
		StorageKey: s.StorageKey,
		Tone:       s.Tone,
		Voice:      s.Voice,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  derefTime(s.UpdatedAt),
	}
}

func (m *MediaMapper) GeneratedSpeechesToEntities(speeches []*model.GeneratedSpeech) []*entity.GeneratedSpeech {
	entities := make([]*entity.GeneratedSpeech, len(speeches))
	for i, s := range speeches {
		entities[i] = m.GeneratedSpeechToEntity(s)
	}
	return entities
}
