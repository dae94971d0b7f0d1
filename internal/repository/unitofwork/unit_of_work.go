package unitofwork

import (
	"context"

	"ai-visionboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BoardRepository() contract.BoardRepository
	QueryRecordRepository() contract.QueryRecordRepository
}
