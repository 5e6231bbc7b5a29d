package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/testdb"
	"ai-mediagen-be/internal/repository/memory"
	"ai-mediagen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, enforce bool) (*Manager, unitofwork.UnitOfWork) {
	t.Helper()
	db := testdb.New(t)
	return NewManager(memory.NewSessionRepository(), enforce), unitofwork.NewUnitOfWork(db)
}

func TestTitleFromPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"short prompt kept", "Hello there", "Hello there"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long prompt cut", "Explain the theory of relativity in simple terms", "Explain the theory of relativi"},
		{"surrounding blanks trimmed", "   padded prompt   ", "padded prompt"},
		{"multibyte counted as characters", strings.Repeat("日", 40), strings.Repeat("日", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromPrompt(tt.prompt))
		})
	}
}

func TestOpenRejectsBlankPrompt(t *testing.T) {
	m, _ := newTestManager(t, true)

	_, err := m.Open(uuid.New(), "   \n\t")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	session, err := m.Open(uuid.New(), "Write a haiku about autumn leaves please")
	require.NoError(t, err)
	assert.Equal(t, "Write a haiku about autumn lea", session.Title)
	assert.NotEqual(t, uuid.Nil, session.Id)
}

func TestResumeOrCreate(t *testing.T) {
	ctx := context.Background()
	m, uow := newTestManager(t, true)
	owner := uuid.New()

	created, err := m.ResumeOrCreate(ctx, uow, owner, nil, "first prompt")
	require.NoError(t, err)
	assert.Equal(t, "first prompt", created.Title)

	resumed, err := m.ResumeOrCreate(ctx, uow, owner, &created.Id, "ignored prompt")
	require.NoError(t, err)
	assert.Equal(t, created.Id, resumed.Id)
	assert.Equal(t, "first prompt", resumed.Title)

	missing := uuid.New()
	_, err = m.ResumeOrCreate(ctx, uow, owner, &missing, "x")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestResumeOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("enforced hides foreign sessions", func(t *testing.T) {
		m, uow := newTestManager(t, true)
		created, err := m.ResumeOrCreate(ctx, uow, owner, nil, "mine")
		require.NoError(t, err)

		_, err = m.Resume(ctx, uow, stranger, created.Id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))

		// a cached entry must not bypass the owner check
		_, err = m.Resume(ctx, uow, owner, created.Id)
		require.NoError(t, err)
		_, err = m.Resume(ctx, uow, stranger, created.Id)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("disabled resumes by id only", func(t *testing.T) {
		m, uow := newTestManager(t, false)
		created, err := m.ResumeOrCreate(ctx, uow, owner, nil, "mine")
		require.NoError(t, err)

		resumed, err := m.Resume(ctx, uow, stranger, created.Id)
		require.NoError(t, err)
		assert.Equal(t, owner, resumed.UserId)
	})
}

func TestListSessionsNewestFirstAndIsolated(t *testing.T) {
	ctx := context.Background()
	m, uow := newTestManager(t, true)
	alice := uuid.New()
	bob := uuid.New()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, prompt := range []string{"older", "newer"} {
		at := base.Add(time.Duration(i) * time.Minute)
		m.now = func() time.Time { return at }
		_, err := m.ResumeOrCreate(ctx, uow, alice, nil, prompt)
		require.NoError(t, err)
	}
	_, err := m.ResumeOrCreate(ctx, uow, bob, nil, "bob's")
	require.NoError(t, err)

	sessions, err := m.ListSessions(ctx, uow, alice)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].Title)
	assert.Equal(t, "older", sessions[1].Title)

	none, err := m.ListSessions(ctx, uow, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListHistoryFiltersByOwner(t *testing.T) {
	ctx := context.Background()
	m, uow := newTestManager(t, true)
	owner := uuid.New()

	session, err := m.ResumeOrCreate(ctx, uow, owner, nil, "hi")
	require.NoError(t, err)
	require.NoError(t, uow.ChatTurnRepository().Create(ctx, &entity.ChatTurn{
		Id: uuid.New(), ChatSessionId: session.Id, UserId: owner, Prompt: "hi", Response: "hello",
	}))

	history, err := m.ListHistory(ctx, uow, session.Id, owner)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	foreign, err := m.ListHistory(ctx, uow, session.Id, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, foreign)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	m, uow := newTestManager(t, true)
	owner := uuid.New()

	session, err := m.ResumeOrCreate(ctx, uow, owner, nil, "original title")
	require.NoError(t, err)

	renamed, err := m.Rename(ctx, uow, owner, session.Id, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)

	resumed, err := m.Resume(ctx, uow, owner, session.Id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resumed.Title)

	_, err = m.Rename(ctx, uow, owner, uuid.New(), "x")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = m.Rename(ctx, uow, uuid.New(), session.Id, "x")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = m.Rename(ctx, uow, owner, session.Id, "  ")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
