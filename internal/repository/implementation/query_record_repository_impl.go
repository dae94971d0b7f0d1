package implementation

import (
	"context"
	"errors"

	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/mapper"
	"ai-visionboard-be/internal/model"
	"ai-visionboard-be/internal/repository/contract"
	"ai-visionboard-be/internal/repository/specification"

	"gorm.io/gorm"
)

type QueryRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryRecordMapper
}

func NewQueryRecordRepository(db *gorm.DB) contract.QueryRecordRepository {
	return &QueryRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewQueryRecordMapper(),
	}
}

func (r *QueryRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QueryRecordRepositoryImpl) Create(ctx context.Context, record *entity.QueryRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QueryRecord, error) {
	var m model.QueryRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueryRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryRecord, error) {
	var models []*model.QueryRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QueryRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QueryRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
