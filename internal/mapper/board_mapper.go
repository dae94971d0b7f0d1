package mapper

import (
	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/model"
)

type BoardMapper struct{}

func NewBoardMapper() *BoardMapper {
	return &BoardMapper{}
}

func (m *BoardMapper) ToEntity(b *model.Board) *entity.Board {
	if b == nil {
		return nil
	}
	return &entity.Board{
		Token:     b.Token,
		CreatedAt: b.CreatedAt,
	}
}

func (m *BoardMapper) ToModel(b *entity.Board) *model.Board {
	if b == nil {
		return nil
	}
	return &model.Board{
		Token:     b.Token,
		CreatedAt: b.CreatedAt,
	}
}
