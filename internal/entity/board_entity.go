package entity

import "time"

// Board groups every query a single capture device has made. The token is a
// caller-supplied opaque identifier, not something we mint.
type Board struct {
	Token     string
	CreatedAt time.Time
}
