package contract

import (
	"context"

	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/repository/specification"
)

type QueryRecordRepository interface {
	Create(ctx context.Context, record *entity.QueryRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QueryRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
