package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/identity"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type stubGeneration struct {
	err         error
	chatReq     *dto.SendChatRequest
	imageReq    *dto.GenerateImageRequest
	speechEmail string
	userId      uuid.UUID
}

func (s *stubGeneration) Chat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	s.userId, s.chatReq = userId, request
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SendChatResponse{ChatSessionId: uuid.New(), Title: "Hello", Response: "Hi there"}, nil
}

func (s *stubGeneration) GenerateImage(ctx context.Context, userId uuid.UUID, request *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	s.userId, s.imageReq = userId, request
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GenerateImageResponse{Id: uuid.New(), Image: "https://cdn.test/a.png", Success: true}, nil
}

func (s *stubGeneration) GenerateSpeech(ctx context.Context, userId uuid.UUID, request *dto.GenerateSpeechRequest) (*dto.GeneratedSpeechResponse, error) {
	s.userId = userId
	s.speechEmail = identity.EmailFromContext(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GeneratedSpeechResponse{Id: uuid.New(), Text: request.Text, Voice: "alloy"}, nil
}

type stubChats struct {
	err       error
	renamedTo string
}

func (s *stubChats) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	return []*dto.ChatSessionResponse{{Id: uuid.New(), Title: "One"}}, s.err
}

func (s *stubChats) ListHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatTurnResponse, error) {
	return []*dto.ChatTurnResponse{}, s.err
}

func (s *stubChats) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.renamedTo = request.Title
	return &dto.ChatSessionResponse{Id: sessionId, Title: request.Title}, nil
}

type stubMedia struct {
	err      error
	kind     constant.ArtifactKind
	saved    *bool
	listReq  *dto.ListArtifactsRequest
	targetId uuid.UUID
}

func (s *stubMedia) SaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error) {
	return s.transition(kind, id, true)
}

func (s *stubMedia) UnsaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error) {
	return s.transition(kind, id, false)
}

func (s *stubMedia) transition(kind constant.ArtifactKind, id uuid.UUID, saved bool) (*dto.ArtifactResponse, error) {
	s.kind, s.targetId, s.saved = kind, id, &saved
	if s.err != nil {
		return nil, s.err
	}
	res := &dto.ArtifactResponse{Kind: string(kind)}
	if kind == constant.ArtifactKindImage {
		res.Image = &dto.GeneratedImageResponse{Id: id, Saved: saved}
	} else {
		res.Speech = &dto.GeneratedSpeechResponse{Id: id, Saved: saved}
	}
	return res, nil
}

func (s *stubMedia) ListImages(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedImageResponse, int64, error) {
	s.listReq = request
	return []*dto.GeneratedImageResponse{{Id: uuid.New()}}, 1, s.err
}

func (s *stubMedia) ListSpeeches(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedSpeechResponse, int64, error) {
	s.listReq = request
	return []*dto.GeneratedSpeechResponse{}, 0, s.err
}

type testServer struct {
	app        *fiber.App
	generation *stubGeneration
	chats      *stubChats
	media      *stubMedia
	userId     uuid.UUID
	token      string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		generation: &stubGeneration{},
		chats:      &stubChats{},
		media:      &stubMedia{},
		userId:     uuid.New(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": s.userId.String(),
		"email":   "grace@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	s.token = token

	auth := serverutils.JwtMiddleware(testSecret)
	s.app = fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(logger.NewNopLogger())})
	api := s.app.Group("/api")
	NewChatController(s.generation, s.chats, auth).RegisterRoutes(api)
	NewImageController(s.generation, s.media, auth).RegisterRoutes(api)
	NewSpeechController(s.generation, s.media, auth).RegisterRoutes(api)
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1/send", strings.NewReader(`{"prompt":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, s.generation.chatReq)
}

func TestSendChat(t *testing.T) {
	s := newTestServer(t)
	sessionId := uuid.New()

	code, body := s.do(t, http.MethodPost, "/api/chat/v1/send", `{"prompt":"Hello","chat_session_id":"`+sessionId.String()+`"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hi there", body["data"].(map[string]interface{})["response"])

	require.NotNil(t, s.generation.chatReq)
	assert.Equal(t, s.userId, s.generation.userId)
	require.NotNil(t, s.generation.chatReq.ChatSessionId)
	assert.Equal(t, sessionId, *s.generation.chatReq.ChatSessionId)
}

func TestSendChatBlankPromptRejected(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/chat/v1/send", `{"prompt":"   "}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["errors"], "prompt")
	assert.Nil(t, s.generation.chatReq)
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generation", apperror.Generation("chat generation failed", apperror.External("openai", errors.New("quota"))), fiber.StatusBadGateway},
		{"not found", apperror.NotFound("chat session not found"), fiber.StatusNotFound},
		{"validation", apperror.Validation("prompt must not be empty"), fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.generation.err = tt.err

			code, body := s.do(t, http.MethodPost, "/api/chat/v1/send", `{"prompt":"Hello"}`)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["message"])
		})
	}
}

func TestRenameSession(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPut, "/api/chat/v1/sessions/"+uuid.NewString(), `{"title":"Trip planning"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Trip planning", s.chats.renamedTo)

	code, _ = s.do(t, http.MethodPut, "/api/chat/v1/sessions/not-a-uuid", `{"title":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestListHistory(t *testing.T) {
	s := newTestServer(t)
	s.chats.err = apperror.NotFound("chat session not found")

	code, _ := s.do(t, http.MethodGet, "/api/chat/v1/sessions/"+uuid.NewString()+"/history", "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGenerateImage(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/image/v1/generate", `{"title":"Sunset","image_size":"512x512","mood_style":"calm"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "https://cdn.test/a.png", body["data"].(map[string]interface{})["image"])
	require.NotNil(t, s.generation.imageReq)
	assert.Equal(t, "calm", s.generation.imageReq.MoodStyle)

	code, _ = s.do(t, http.MethodPost, "/api/image/v1/generate", `{"image_size":"512x512"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestSaveAndUnsaveRoutes(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	code, body := s.do(t, http.MethodPatch, "/api/image/v1/"+id.String()+"/save", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, constant.ArtifactKindImage, s.media.kind)
	assert.Equal(t, id, s.media.targetId)
	assert.True(t, *s.media.saved)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "image", data["kind"])
	image := data["image"].(map[string]interface{})
	assert.Equal(t, id.String(), image["id"])
	assert.Equal(t, true, image["saved"])

	code, body = s.do(t, http.MethodPatch, "/api/speech/v1/"+id.String()+"/unsave", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, constant.ArtifactKindSpeech, s.media.kind)
	assert.False(t, *s.media.saved)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["speech"].(map[string]interface{})["saved"])
	assert.NotContains(t, data, "image")

	s.media.err = apperror.State("Image has already been saved")
	code, body = s.do(t, http.MethodPatch, "/api/image/v1/"+id.String()+"/save", "")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Image has already been saved", body["message"])
}

func TestListImagesQuery(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/image/v1?saved=true&limit=5&offset=10", "")
	assert.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, s.media.listReq)
	require.NotNil(t, s.media.listReq.Saved)
	assert.True(t, *s.media.listReq.Saved)
	assert.Equal(t, 5, s.media.listReq.Limit)
	assert.Equal(t, 10, s.media.listReq.Offset)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["total"])

	code, _ = s.do(t, http.MethodGet, "/api/speech/v1", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Nil(t, s.media.listReq.Saved)
	assert.Equal(t, 20, s.media.listReq.Limit)

	code, _ = s.do(t, http.MethodGet, "/api/image/v1?limit=500", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestGenerateSpeechCarriesIdentity(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/api/speech/v1/generate", `{"text":"Good morning","tone":"friendly"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "grace@example.com", s.generation.speechEmail)
	assert.Equal(t, s.userId, s.generation.userId)
}
