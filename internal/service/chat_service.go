package service

import (
	"context"

	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/repository/unitofwork"
	"ai-mediagen-be/pkg/chat/session"

	"github.com/google/uuid"
)

// IChatService covers the read and rename side of chat sessions; sending a
// prompt goes through IGenerationService.Chat.
type IChatService interface {
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	ListHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	logger     logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, sessions *session.Manager, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     log,
	}
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := s.sessions.ListSessions(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, chatSession := range sessions {
		res = append(res, toSessionResponse(chatSession))
	}
	return res, nil
}

func (s *chatService) ListHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	turns, err := s.sessions.ListHistory(ctx, uow, sessionId, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, turn := range turns {
		res = append(res, &dto.ChatTurnResponse{
			Id:        turn.Id,
			Prompt:    turn.Prompt,
			Response:  turn.Response,
			CreatedAt: turn.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := s.sessions.Rename(ctx, uow, userId, sessionId, request.Title)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ChatService", "Session renamed", map[string]interface{}{
		"user_id":    userId,
		"session_id": sessionId,
	})
	return toSessionResponse(chatSession), nil
}

func toSessionResponse(chatSession *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:        chatSession.Id,
		Title:     chatSession.Title,
		CreatedAt: chatSession.CreatedAt,
		UpdatedAt: chatSession.UpdatedAt,
	}
}
