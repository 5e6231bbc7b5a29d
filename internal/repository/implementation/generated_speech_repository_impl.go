package implementation

import (
	"context"
	"errors"

	"ai-mediagen-be/internal/entity"
	"ai-mediagen-be/internal/mapper"
	"ai-mediagen-be/internal/model"
	"ai-mediagen-be/internal/repository/contract"
	"ai-mediagen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratedSpeechRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewGeneratedSpeechRepository(db *gorm.DB) contract.GeneratedSpeechRepository {
	return &GeneratedSpeechRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *GeneratedSpeechRepositoryImpl) Create(ctx context.Context, speech *entity.GeneratedSpeech) error {
	m := r.mapper.GeneratedSpeechToModel(speech)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*speech = *r.mapper.GeneratedSpeechToEntity(m)
	return nil
}

func (r *GeneratedSpeechRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedSpeech, error) {
	var m model.GeneratedSpeech
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GeneratedSpeechToEntity(&m), nil
}

func (r *GeneratedSpeechRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedSpeech, error) {
	var models []*model.GeneratedSpeech
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GeneratedSpeechesToEntities(models), nil
}

func (r *GeneratedSpeechRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedSpeech{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GeneratedSpeechRepositoryImpl) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.GeneratedSpeech{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
