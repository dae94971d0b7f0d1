package model

import "time"

type QueryRecord struct {
	Id         string    `gorm:"type:varchar(64);primaryKey"`
	BoardToken string    `gorm:"type:varchar(255);not null;index"`
	Prompt     string    `gorm:"type:text;not null"`
	Response   string    `gorm:"type:text;not null"`
	ImageUrl   string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (QueryRecord) TableName() string {
	return "board_queries"
}
