package service

import (
	"context"

	"ai-visionboard-be/internal/dto"
	"ai-visionboard-be/internal/repository/specification"
	"ai-visionboard-be/internal/repository/unitofwork"
)

type IBoardService interface {
	GetQueries(ctx context.Context, boardToken string) (*dto.GetBoardQueriesResponse, error)
}

type boardService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewBoardService(uowFactory unitofwork.RepositoryFactory) IBoardService {
	return &boardService{
		uowFactory: uowFactory,
	}
}

// GetQueries returns the full history of a board in creation order. An
// unknown token yields an empty list rather than an error; boards only come
// into existence with their first persisted query.
func (s *boardService) GetQueries(ctx context.Context, boardToken string) (*dto.GetBoardQueriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.QueryRecordRepository().FindAll(ctx,
		specification.ByBoardToken{Token: boardToken},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	queries := make([]*dto.BoardQueryResponse, 0, len(records))
	for _, record := range records {
		queries = append(queries, &dto.BoardQueryResponse{
			Id:        record.Id,
			Prompt:    record.Prompt,
			Response:  record.Response,
			ImageUrl:  record.ImageUrl,
			CreatedAt: record.CreatedAt,
		})
	}

	return &dto.GetBoardQueriesResponse{
		BoardToken: boardToken,
		Queries:    queries,
	}, nil
}
