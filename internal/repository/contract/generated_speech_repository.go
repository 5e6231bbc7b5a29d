package contract

import (
	"context"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GeneratedSpeechRepository interface {
	Create(ctx context.Context, speech *entity.GeneratedSpeech) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedSpeech, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedSpeech, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next bool) (bool, error)
}
