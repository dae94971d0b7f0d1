package entity

import "time"

// QueryRecord is one finished question/answer pair on a board. Records are
// append-only and never mutated after insert.
type QueryRecord struct {
	Id         string // "<unix-ts>_<rand6>", sorts chronologically
	BoardToken string
	Prompt     string
	Response   string
	ImageUrl   string
	CreatedAt  time.Time
}
