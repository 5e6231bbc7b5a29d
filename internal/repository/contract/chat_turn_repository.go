package contract

import (
	"context"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/repository/specification"
)

// ChatTurnRepository is append-only; turns are never updated.
type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
