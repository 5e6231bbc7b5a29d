package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/identity"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/repository/unitofwork"
	"ai-mediagen-be/pkg/chat/session"
	"ai-mediagen-be/pkg/generation"
	"ai-mediagen-be/pkg/llm"
	"ai-mediagen-be/pkg/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IGenerationService runs one generation request end to end: selection,
// the upstream call, durable storage and persistence.
type IGenerationService interface {
	Chat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GenerateImage(ctx context.Context, userId uuid.UUID, request *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
	GenerateSpeech(ctx context.Context, userId uuid.UUID, request *dto.GenerateSpeechRequest) (*dto.GeneratedSpeechResponse, error)
}

type GenerationOptions struct {
	// Timeout bounds each upstream generation and upload call.
	Timeout time.Duration
	// TempDir receives the request-scoped audio files.
	TempDir string
}

type generationService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	completer  llm.LLMProvider
	images     generation.ImageSynthesizer
	speech     generation.SpeechSynthesizer
	store      storage.ArtifactStore
	notifier   INotificationService
	logger     logger.ILogger
	tracer     trace.Tracer
	opts       GenerationOptions
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *session.Manager,
	completer llm.LLMProvider,
	images generation.ImageSynthesizer,
	speech generation.SpeechSynthesizer,
	store storage.ArtifactStore,
	notifier INotificationService,
	log logger.ILogger,
	opts GenerationOptions,
) IGenerationService {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &generationService{
		uowFactory: uowFactory,
		sessions:   sessions,
		completer:  completer,
		images:     images,
		speech:     speech,
		store:      store,
		notifier:   notifier,
		logger:     log,
		tracer:     otel.Tracer("generation"),
		opts:       opts,
	}
}

// Chat answers one prompt and appends the turn to the referenced session,
// or to a new session titled from the prompt. Nothing is written when the
// completion fails.
func (s *generationService) Chat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	ctx, span := s.tracer.Start(ctx, "generation.Chat", trace.WithAttributes(
		attribute.String("user_id", userId.String()),
		attribute.Bool("resume", request.ChatSessionId != nil),
	))
	defer span.End()

	if strings.TrimSpace(request.Prompt) == "" {
		return nil, apperror.Validation("prompt must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Fail fast on an unknown session before paying for a completion
	if request.ChatSessionId != nil {
		if _, err := s.sessions.Resume(ctx, uow, userId, *request.ChatSessionId); err != nil {
			return nil, err
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	answer, err := s.completer.Generate(genCtx, request.Prompt)
	cancel()
	if err != nil {
		return nil, s.generationFailed(span, "Chat", "chat generation failed", err, userId)
	}
	if strings.TrimSpace(answer) == "" {
		answer = constant.ChatEmptyResponseFallback
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chatSession, err := s.sessions.ResumeOrCreate(ctx, uow, userId, request.ChatSessionId, request.Prompt)
	if err != nil {
		return nil, err
	}

	turn := &entity.ChatTurn{
		Id:            uuid.New(),
		ChatSessionId: chatSession.Id,
		UserId:        userId,
		Prompt:        request.Prompt,
		Response:      answer,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatTurnRepository().Create(ctx, turn); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("GenerationService", "Chat turn stored", map[string]interface{}{
		"user_id":    userId,
		"session_id": chatSession.Id,
		"turn_id":    turn.Id,
	})

	return &dto.SendChatResponse{
		ChatSessionId: chatSession.Id,
		Title:         chatSession.Title,
		Response:      answer,
	}, nil
}

// GenerateImage synthesizes an image, copies it to durable storage and
// records it as unsaved.
func (s *generationService) GenerateImage(ctx context.Context, userId uuid.UUID, request *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	ctx, span := s.tracer.Start(ctx, "generation.GenerateImage", trace.WithAttributes(
		attribute.String("user_id", userId.String()),
		attribute.String("image_size", request.ImageSize),
	))
	defer span.End()

	if strings.TrimSpace(request.Title) == "" {
		return nil, apperror.Validation("title must not be empty")
	}
	size, model, err := generation.ModelForSize(request.ImageSize)
	if err != nil {
		return nil, err
	}

	options := entity.ImagePromptOptions{
		ArtStyle:         request.ArtStyle,
		LightingStyle:    request.LightingStyle,
		MoodStyle:        request.MoodStyle,
		NegativeKeywords: request.NegativeKeywords,
	}
	prompt := generation.ComposePrompt(request.Title, generation.PromptOptions(options))
	span.SetAttributes(attribute.String("model", string(model)))

	genCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	transientURL, err := s.images.SynthesizeImage(genCtx, prompt, size, model)
	cancel()
	if err != nil {
		return nil, s.generationFailed(span, "GenerateImage", "image generation failed", err, userId)
	}

	imageId := uuid.New()
	key := fmt.Sprintf("images/%s/%s.png", userId, imageId)

	uploadCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	durableURL, err := s.store.PutFromURL(uploadCtx, key, transientURL)
	cancel()
	if err != nil {
		return nil, s.storageFailed(span, "GenerateImage", "image upload failed", err, userId)
	}

	image := &entity.GeneratedImage{
		Id:         imageId,
		UserId:     userId,
		Title:      strings.TrimSpace(request.Title),
		Prompt:     prompt,
		Url:        durableURL,
		StorageKey: key,
		Model:      string(model),
		Size:       string(size),
		Options:    options,
		Status:     false,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GeneratedImageRepository().Create(ctx, image); err != nil {
		s.discardBlob(ctx, key)
		return nil, err
	}

	s.logger.Info("GenerationService", "Image generated", map[string]interface{}{
		"user_id":  userId,
		"image_id": image.Id,
		"model":    image.Model,
		"size":     image.Size,
	})

	s.notify(ctx, userId, constant.NotificationImageGenerated, constant.ArtifactKindImage, image.Id,
		"Your image is ready", image.Title, image.Url)

	return &dto.GenerateImageResponse{
		Id:      image.Id,
		Image:   image.Url,
		Success: true,
	}, nil
}

// GenerateSpeech renders text with the voice selected for the tone. The audio
// passes through a request-scoped temp file that is always removed.
func (s *generationService) GenerateSpeech(ctx context.Context, userId uuid.UUID, request *dto.GenerateSpeechRequest) (*dto.GeneratedSpeechResponse, error) {
	ctx, span := s.tracer.Start(ctx, "generation.GenerateSpeech", trace.WithAttributes(
		attribute.String("user_id", userId.String()),
		attribute.String("tone", request.Tone),
	))
	defer span.End()

	if strings.TrimSpace(request.Text) == "" {
		return nil, apperror.Validation("text must not be empty")
	}
	voice := generation.VoiceForTone(request.Tone)
	span.SetAttributes(attribute.String("voice", string(voice)))

	genCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	audio, err := s.speech.SynthesizeSpeech(genCtx, request.Text, voice)
	cancel()
	if err != nil {
		return nil, s.generationFailed(span, "GenerateSpeech", "speech generation failed", err, userId)
	}

	speechId := uuid.New()
	key := fmt.Sprintf("speeches/%s/%s.mp3", userId, speechId)

	durableURL, err := s.uploadAudio(ctx, key, audio)
	if err != nil {
		return nil, s.storageFailed(span, "GenerateSpeech", "speech upload failed", err, userId)
	}

	speech := &entity.GeneratedSpeech{
		Id:         speechId,
		UserId:     userId,
		Text:       request.Text,
		Url:        durableURL,
		StorageKey: key,
		Tone:       request.Tone,
		Voice:      string(voice),
		Status:     false,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GeneratedSpeechRepository().Create(ctx, speech); err != nil {
		s.discardBlob(ctx, key)
		return nil, err
	}

	s.logger.Info("GenerationService", "Speech generated", map[string]interface{}{
		"user_id":   userId,
		"speech_id": speech.Id,
		"voice":     speech.Voice,
	})

	s.notify(ctx, userId, constant.NotificationSpeechGenerated, constant.ArtifactKindSpeech, speech.Id,
		"Your speech is ready", truncateRunes(speech.Text, 120), speech.Url)

	return toSpeechResponse(speech), nil
}

// uploadAudio stages the audio in a temp file and uploads from it. The temp
// file is removed on every path.
func (s *generationService) uploadAudio(ctx context.Context, key string, audio []byte) (string, error) {
	tmp, err := os.CreateTemp(s.opts.TempDir, "speech-*.mp3")
	if err != nil {
		return "", apperror.Storage("create temp audio file", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(audio); err != nil {
		return "", apperror.Storage("write temp audio file", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", apperror.Storage("rewind temp audio file", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.store.Put(uploadCtx, key, constant.ArtifactContentTypeMPEG, tmp)
}

func (s *generationService) generationFailed(span trace.Span, operation, message string, err error, userId uuid.UUID) error {
	wrapped := apperror.Generation(message, err)
	span.RecordError(wrapped)
	span.SetStatus(codes.Error, message)
	s.logger.Error("GenerationService", message, map[string]interface{}{
		"operation": operation,
		"user_id":   userId,
		"error":     err,
	})
	return wrapped
}

func (s *generationService) storageFailed(span trace.Span, operation, message string, err error, userId uuid.UUID) error {
	wrapped := err
	if apperror.KindOf(err) != apperror.KindStorage {
		wrapped = apperror.Storage(message, err)
	}
	span.RecordError(wrapped)
	span.SetStatus(codes.Error, message)
	s.logger.Error("GenerationService", message, map[string]interface{}{
		"operation": operation,
		"user_id":   userId,
		"error":     err,
	})
	return wrapped
}

// discardBlob removes an uploaded object whose record could not be written.
func (s *generationService) discardBlob(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("GenerationService", "Failed to remove orphaned artifact", map[string]interface{}{
			"storage_key": key,
			"error":       err,
		})
	}
}

func (s *generationService) notify(ctx context.Context, userId uuid.UUID, notificationType string, kind constant.ArtifactKind, entityId uuid.UUID, title, message, url string) {
	if s.notifier == nil {
		return
	}
	id := entityId
	s.notifier.Notify(ctx, &entity.Notification{
		Type:       notificationType,
		UserId:     userId,
		Recipient:  identity.EmailFromContext(ctx),
		EntityType: string(kind),
		EntityId:   &id,
		Title:      title,
		Message:    message,
		Metadata:   map[string]interface{}{"url": url},
	})
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
