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
	"gorm.io/gorm/clause"
)

type BoardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BoardMapper
}

func NewBoardRepository(db *gorm.DB) contract.BoardRepository {
	return &BoardRepositoryImpl{
		db:     db,
		mapper: mapper.NewBoardMapper(),
	}
}

func (r *BoardRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// CreateIfAbsent relies on the database resolving the token conflict, so two
// racing inserts for the same board both succeed without a prior SELECT.
func (r *BoardRepositoryImpl) CreateIfAbsent(ctx context.Context, board *entity.Board) error {
	m := r.mapper.ToModel(board)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

func (r *BoardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Board, error) {
	var m model.Board
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BoardRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Board{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
