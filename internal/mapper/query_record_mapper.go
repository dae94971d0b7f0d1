package mapper

import (
	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/model"
)

type QueryRecordMapper struct{}

func NewQueryRecordMapper() *QueryRecordMapper {
	return &QueryRecordMapper{}
}

func (m *QueryRecordMapper) ToEntity(r *model.QueryRecord) *entity.QueryRecord {
	if r == nil {
		return nil
	}
	return &entity.QueryRecord{
		Id:         r.Id,
		BoardToken: r.BoardToken,
		Prompt:     r.Prompt,
		Response:   r.Response,
		ImageUrl:   r.ImageUrl,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *QueryRecordMapper) ToModel(r *entity.QueryRecord) *model.QueryRecord {
	if r == nil {
		return nil
	}
	return &model.QueryRecord{
		Id:         r.Id,
		BoardToken: r.BoardToken,
		Prompt:     r.Prompt,
		Response:   r.Response,
		ImageUrl:   r.ImageUrl,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *QueryRecordMapper) ToEntities(records []*model.QueryRecord) []*entity.QueryRecord {
	entities := make([]*entity.QueryRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
