package model

import "time"

type Board struct {
	Token     string    `gorm:"type:varchar(255);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Board) TableName() string {
	return "boards"
}
