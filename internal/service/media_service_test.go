package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/testdb"
	"ai-mediagen-be/internal/repository/unitofwork"
	"ai-mediagen-be/pkg/media/lifecycle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaFixture(t *testing.T) (IMediaService, unitofwork.UnitOfWork, *fakeNotifier) {
	t.Helper()
	db := testdb.New(t)
	notifier := &fakeNotifier{}
	svc := NewMediaService(
		unitofwork.NewRepositoryFactory(db),
		lifecycle.NewImageManager(true),
		lifecycle.NewSpeechManager(true),
		notifier,
		logger.NewNopLogger(),
	)
	return svc, unitofwork.NewUnitOfWork(db), notifier
}

func seedServiceImage(t *testing.T, uow unitofwork.UnitOfWork, owner uuid.UUID, saved bool, createdAt time.Time) *entity.GeneratedImage {
	t.Helper()
	image := &entity.GeneratedImage{
		Id:         uuid.New(),
		UserId:     owner,
		Title:      "Harbor",
		Prompt:     "Harbor",
		Url:        "https://cdn.test/harbor.png",
		StorageKey: "images/harbor.png",
		Model:      "dall-e-3",
		Size:       "1024x1024",
		Status:     saved,
		CreatedAt:  createdAt,
	}
	require.NoError(t, uow.GeneratedImageRepository().Create(context.Background(), image))
	return image
}

func seedServiceSpeech(t *testing.T, uow unitofwork.UnitOfWork, owner uuid.UUID) *entity.GeneratedSpeech {
	t.Helper()
	speech := &entity.GeneratedSpeech{
		Id:         uuid.New(),
		UserId:     owner,
		Text:       "Hello",
		Url:        "https://cdn.test/hello.mp3",
		StorageKey: "speeches/hello.mp3",
		Voice:      "alloy",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, uow.GeneratedSpeechRepository().Create(context.Background(), speech))
	return speech
}

func TestSaveAndUnsaveArtifact(t *testing.T) {
	svc, uow, notifier := newMediaFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	image := seedServiceImage(t, uow, owner, false, time.Now())

	saved, err := svc.SaveArtifact(ctx, constant.ArtifactKindImage, image.Id, owner)
	require.NoError(t, err)
	assert.Equal(t, "image", saved.Kind)
	require.NotNil(t, saved.Image)
	assert.Nil(t, saved.Speech)
	assert.Equal(t, image.Id, saved.Image.Id)
	assert.True(t, saved.Image.Saved)

	_, err = svc.SaveArtifact(ctx, constant.ArtifactKindImage, image.Id, owner)
	assert.True(t, errors.Is(err, apperror.ErrState))
	assert.Equal(t, "Image has already been saved", err.Error())

	removed, err := svc.UnsaveArtifact(ctx, constant.ArtifactKindImage, image.Id, owner)
	require.NoError(t, err)
	require.NotNil(t, removed.Image)
	assert.False(t, removed.Image.Saved)

	_, err = svc.UnsaveArtifact(ctx, constant.ArtifactKindImage, image.Id, owner)
	assert.True(t, errors.Is(err, apperror.ErrState))

	sent := notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, constant.NotificationArtifactSaved, sent[0].Type)
	assert.Equal(t, constant.NotificationArtifactUnsaved, sent[1].Type)
	assert.Equal(t, image.Id, *sent[0].EntityId)
}

func TestSaveSpeechArtifact(t *testing.T) {
	svc, uow, _ := newMediaFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	speech := seedServiceSpeech(t, uow, owner)

	_, err := svc.UnsaveArtifact(ctx, constant.ArtifactKindSpeech, speech.Id, owner)
	assert.True(t, errors.Is(err, apperror.ErrState))

	saved, err := svc.SaveArtifact(ctx, constant.ArtifactKindSpeech, speech.Id, owner)
	require.NoError(t, err)
	require.NotNil(t, saved.Speech)
	assert.Nil(t, saved.Image)
	assert.True(t, saved.Speech.Saved)

	_, err = svc.SaveArtifact(ctx, constant.ArtifactKindSpeech, uuid.New(), owner)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSaveArtifactUnknownKind(t *testing.T) {
	svc, _, notifier := newMediaFixture(t)

	res, err := svc.SaveArtifact(context.Background(), constant.ArtifactKind("video"), uuid.New(), uuid.New())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Empty(t, notifier.all())
}

func TestListImagesFiltersAndPaginates(t *testing.T) {
	svc, uow, _ := newMediaFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)

	oldest := seedServiceImage(t, uow, owner, true, base)
	middle := seedServiceImage(t, uow, owner, false, base.Add(time.Minute))
	newest := seedServiceImage(t, uow, owner, true, base.Add(2*time.Minute))
	seedServiceImage(t, uow, uuid.New(), true, base)

	all, total, err := svc.ListImages(ctx, owner, &dto.ListArtifactsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, newest.Id, all[0].Id)
	assert.Equal(t, middle.Id, all[1].Id)
	assert.Equal(t, oldest.Id, all[2].Id)

	saved := true
	onlySaved, total, err := svc.ListImages(ctx, owner, &dto.ListArtifactsRequest{Saved: &saved})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, onlySaved, 2)
	for _, image := range onlySaved {
		assert.True(t, image.Saved)
	}

	page, total, err := svc.ListImages(ctx, owner, &dto.ListArtifactsRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, middle.Id, page[0].Id)
}

func TestListSpeechesIsOwnerScoped(t *testing.T) {
	svc, uow, _ := newMediaFixture(t)
	owner := uuid.New()
	seedServiceSpeech(t, uow, owner)
	seedServiceSpeech(t, uow, uuid.New())

	speeches, total, err := svc.ListSpeeches(context.Background(), owner, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, speeches, 1)
	assert.Equal(t, "alloy", speeches[0].Voice)
}
