package unitofwork

import (
	"context"

	"ai-mediagen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatTurnRepository() contract.ChatTurnRepository
	GeneratedImageRepository() contract.GeneratedImageRepository
	GeneratedSpeechRepository() contract.GeneratedSpeechRepository
}
