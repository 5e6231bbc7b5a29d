package lifecycle

import (
	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/repository/unitofwork"
)

type (
	ImageManager  = Manager[entity.GeneratedImage, *entity.GeneratedImage]
	SpeechManager = Manager[entity.GeneratedSpeech, *entity.GeneratedSpeech]
)

func NewImageManager(enforceOwnership bool) *ImageManager {
	return NewManager[entity.GeneratedImage, *entity.GeneratedImage](
		constant.ArtifactKindImage,
		"Image",
		func(uow unitofwork.UnitOfWork) Repository[entity.GeneratedImage] {
			return uow.GeneratedImageRepository()
		},
		enforceOwnership,
	)
}

func NewSpeechManager(enforceOwnership bool) *SpeechManager {
	return NewManager[entity.GeneratedSpeech, *entity.GeneratedSpeech](
		constant.ArtifactKindSpeech,
		"Speech",
		func(uow unitofwork.UnitOfWork) Repository[entity.GeneratedSpeech] {
			return uow.GeneratedSpeechRepository()
		},
		enforceOwnership,
	)
}
