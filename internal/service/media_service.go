package service

import (
	"context"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/identity"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/repository/specification"
	"ai-mediagen-be/internal/repository/unitofwork"
	"ai-mediagen-be/pkg/media/lifecycle"

	"github.com/google/uuid"
)

const DefaultListLimit = 20

type IMediaService interface {
	SaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error)
	UnsaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error)
	ListImages(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedImageResponse, int64, error)
	ListSpeeches(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedSpeechResponse, int64, error)
}

type mediaService struct {
	uowFactory unitofwork.RepositoryFactory
	images     *lifecycle.ImageManager
	speeches   *lifecycle.SpeechManager
	notifier   INotificationService
	logger     logger.ILogger
}

func NewMediaService(
	uowFactory unitofwork.RepositoryFactory,
	images *lifecycle.ImageManager,
	speeches *lifecycle.SpeechManager,
	notifier INotificationService,
	log logger.ILogger,
) IMediaService {
	return &mediaService{
		uowFactory: uowFactory,
		images:     images,
		speeches:   speeches,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *mediaService) SaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error) {
	return s.transition(ctx, kind, id, userId, true)
}

func (s *mediaService) UnsaveArtifact(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID) (*dto.ArtifactResponse, error) {
	return s.transition(ctx, kind, id, userId, false)
}

func (s *mediaService) transition(ctx context.Context, kind constant.ArtifactKind, id uuid.UUID, userId uuid.UUID, saved bool) (*dto.ArtifactResponse, error) {
	if !kind.Valid() {
		return nil, apperror.Validation("unknown artifact kind %q", kind)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	res := &dto.ArtifactResponse{Kind: string(kind)}

	switch kind {
	case constant.ArtifactKindImage:
		var image *entity.GeneratedImage
		var err error
		if saved {
			image, err = s.images.Save(ctx, uow, id, userId)
		} else {
			image, err = s.images.Unsave(ctx, uow, id, userId)
		}
		if err != nil {
			return nil, err
		}
		res.Image = toImageResponse(image)
	case constant.ArtifactKindSpeech:
		var speech *entity.GeneratedSpeech
		var err error
		if saved {
			speech, err = s.speeches.Save(ctx, uow, id, userId)
		} else {
			speech, err = s.speeches.Unsave(ctx, uow, id, userId)
		}
		if err != nil {
			return nil, err
		}
		res.Speech = toSpeechResponse(speech)
	}

	notificationType := constant.NotificationArtifactUnsaved
	action := "removed"
	if saved {
		notificationType = constant.NotificationArtifactSaved
		action = "saved"
	}

	s.logger.Info("MediaService", "Artifact "+action, map[string]interface{}{
		"kind":    kind,
		"id":      id,
		"user_id": userId,
	})

	if s.notifier != nil {
		entityId := id
		s.notifier.Notify(ctx, &entity.Notification{
			Type:       notificationType,
			UserId:     userId,
			Recipient:  identity.EmailFromContext(ctx),
			EntityType: string(kind),
			EntityId:   &entityId,
			Title:      "Library updated",
			Message:    "Your " + string(kind) + " was " + action + ".",
		})
	}
	return res, nil
}

func (s *mediaService) ListImages(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedImageResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	filters := listFilters(userId, request)

	total, err := uow.GeneratedImageRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	images, err := uow.GeneratedImageRepository().FindAll(ctx, append(filters, listPage(request)...)...)
	if err != nil {
		return nil, 0, err
	}

	res := make([]*dto.GeneratedImageResponse, 0, len(images))
	for _, image := range images {
		res = append(res, toImageResponse(image))
	}
	return res, total, nil
}

func (s *mediaService) ListSpeeches(ctx context.Context, userId uuid.UUID, request *dto.ListArtifactsRequest) ([]*dto.GeneratedSpeechResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	filters := listFilters(userId, request)

	total, err := uow.GeneratedSpeechRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	speeches, err := uow.GeneratedSpeechRepository().FindAll(ctx, append(filters, listPage(request)...)...)
	if err != nil {
		return nil, 0, err
	}

	res := make([]*dto.GeneratedSpeechResponse, 0, len(speeches))
	for _, speech := range speeches {
		res = append(res, toSpeechResponse(speech))
	}
	return res, total, nil
}

// listFilters always scopes to the caller; listing is never cross-tenant.
func listFilters(userId uuid.UUID, request *dto.ListArtifactsRequest) []specification.Specification {
	filters := []specification.Specification{specification.UserOwnedBy{UserID: userId}}
	if request != nil && request.Saved != nil {
		filters = append(filters, specification.BySaveStatus{Saved: *request.Saved})
	}
	return filters
}

func listPage(request *dto.ListArtifactsRequest) []specification.Specification {
	limit, offset := DefaultListLimit, 0
	if request != nil {
		if request.Limit > 0 {
			limit = request.Limit
		}
		offset = request.Offset
	}
	return []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
}

func toImageResponse(image *entity.GeneratedImage) *dto.GeneratedImageResponse {
	return &dto.GeneratedImageResponse{
		Id:        image.Id,
		Title:     image.Title,
		Prompt:    image.Prompt,
		Image:     image.Url,
		Model:     image.Model,
		Size:      image.Size,
		Saved:     image.Status,
		CreatedAt: image.CreatedAt,
	}
}

func toSpeechResponse(speech *entity.GeneratedSpeech) *dto.GeneratedSpeechResponse {
	return &dto.GeneratedSpeechResponse{
		Id:        speech.Id,
		Text:      speech.Text,
		Audio:     speech.Url,
		Tone:      speech.Tone,
		Voice:     speech.Voice,
		Saved:     speech.Status,
		CreatedAt: speech.CreatedAt,
	}
}
