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

type GeneratedImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MediaMapper
}

func NewGeneratedImageRepository(db *gorm.DB) contract.GeneratedImageRepository {
	return &GeneratedImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMediaMapper(),
	}
}

func (r *GeneratedImageRepositoryImpl) Create(ctx context.Context, image *entity.GeneratedImage) error {
	m := r.mapper.GeneratedImageToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.GeneratedImageToEntity(m)
	return nil
}

func (r *GeneratedImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedImage, error) {
	var m model.GeneratedImage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GeneratedImageToEntity(&m), nil
}

func (r *GeneratedImageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedImage, error) {
	var models []*model.GeneratedImage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GeneratedImagesToEntities(models), nil
}

func (r *GeneratedImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedImage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GeneratedImageRepositoryImpl) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.GeneratedImage{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
