package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByBoardToken filters rows belonging to one board.
type ByBoardToken struct {
	Token string
}

func (s ByBoardToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("board_token = ?", s.Token)
}

// ByToken filters boards by their primary key.
type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
