package session

import (
	"context"
	"strings"
	"time"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/repository/memory"
	"ai-mediagen-be/internal/repository/specification"
	"ai-mediagen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager creates, resumes and lists chat sessions. It holds no request
// state; every persistent call runs through the caller's unit of work.
type Manager struct {
	cache            *memory.SessionRepository
	enforceOwnership bool
	now              func() time.Time
}

// NewManager creates a new session manager. With enforceOwnership set,
// lookups by id are scoped to the requesting user.
func NewManager(cache *memory.SessionRepository, enforceOwnership bool) *Manager {
	return &Manager{
		cache:            cache,
		enforceOwnership: enforceOwnership,
		now:              time.Now,
	}
}

// TitleFromPrompt derives a session title from the first prompt: trimmed,
// then cut to the leading ChatSessionTitleMaxLength characters.
func TitleFromPrompt(prompt string) string {
	trimmed := strings.TrimSpace(prompt)
	runes := []rune(trimmed)
	if len(runes) <= constant.ChatSessionTitleMaxLength {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:constant.ChatSessionTitleMaxLength]))
}

// Open builds a new session for the first prompt without persisting it.
func (m *Manager) Open(ownerUserId uuid.UUID, firstPrompt string) (*entity.ChatSession, error) {
	if strings.TrimSpace(firstPrompt) == "" {
		return nil, apperror.Validation("prompt must not be empty")
	}
	return &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    ownerUserId,
		Title:     TitleFromPrompt(firstPrompt),
		CreatedAt: m.now(),
	}, nil
}

// Resume loads an existing session.
func (m *Manager) Resume(ctx context.Context, uow unitofwork.UnitOfWork, ownerUserId uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	if cached, found := m.cache.Get(sessionId); found && m.visibleTo(cached, ownerUserId) {
		return cached, nil
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByWhen(ownerUserId, m.enforceOwnership),
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}

	m.cache.Save(session)
	return session, nil
}

// ResumeOrCreate resumes sessionRef when given, otherwise opens and persists
// a new session titled from firstPrompt.
func (m *Manager) ResumeOrCreate(ctx context.Context, uow unitofwork.UnitOfWork, ownerUserId uuid.UUID, sessionRef *uuid.UUID, firstPrompt string) (*entity.ChatSession, error) {
	if sessionRef != nil {
		return m.Resume(ctx, uow, ownerUserId, *sessionRef)
	}

	session, err := m.Open(ownerUserId, firstPrompt)
	if err != nil {
		return nil, err
	}
	// not cached here: the caller's transaction may still roll back
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns the user's sessions, newest first.
func (m *Manager) ListSessions(ctx context.Context, uow unitofwork.UnitOfWork, ownerUserId uuid.UUID) ([]*entity.ChatSession, error) {
	return uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: ownerUserId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

// ListHistory returns the turns of one session, oldest first. Turns of other
// users are never returned; an unknown session yields an empty history.
func (m *Manager) ListHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, ownerUserId uuid.UUID) ([]*entity.ChatTurn, error) {
	return uow.ChatTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.UserOwnedBy{UserID: ownerUserId},
		specification.OrderBy{Field: "created_at"},
	)
}

// Rename overwrites the session title.
func (m *Manager) Rename(ctx context.Context, uow unitofwork.UnitOfWork, ownerUserId uuid.UUID, sessionId uuid.UUID, newTitle string) (*entity.ChatSession, error) {
	if strings.TrimSpace(newTitle) == "" {
		return nil, apperror.Validation("title must not be empty")
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByWhen(ownerUserId, m.enforceOwnership),
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}

	now := m.now()
	session.Title = strings.TrimSpace(newTitle)
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	m.cache.Save(session)
	return session, nil
}

func (m *Manager) visibleTo(session *entity.ChatSession, userId uuid.UUID) bool {
	return !m.enforceOwnership || session.UserId == userId
}
