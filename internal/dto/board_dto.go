package dto

import "time"

type BoardQueryResponse struct {
	Id        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	ImageUrl  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type GetBoardQueriesResponse struct {
	BoardToken string                `json:"board_token"`
	Queries    []*BoardQueryResponse `json:"queries"`
}
