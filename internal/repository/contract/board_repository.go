package contract

import (
	"context"

	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/repository/specification"
)

type BoardRepository interface {
	// CreateIfAbsent inserts the board unless the token already exists.
	// Safe to call concurrently for the same token.
	CreateIfAbsent(ctx context.Context, board *entity.Board) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Board, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
