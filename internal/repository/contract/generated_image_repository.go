package contract

import (
	"context"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GeneratedImageRepository interface {
	Create(ctx context.Context, image *entity.GeneratedImage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedImage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedImage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CompareAndSetStatus flips status only if it still equals expected.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next bool) (bool, error)
}
