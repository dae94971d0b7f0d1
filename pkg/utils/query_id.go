package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const queryIdSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewQueryId returns a chronologically sortable record id of the form
// "<unix-seconds>_<6 random lowercase+digits>". The timestamp prefix keeps
// lexical order aligned with creation order; the suffix breaks same-second
// collisions.
func NewQueryId() string {
	return NewQueryIdAt(time.Now())
}

func NewQueryIdAt(t time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = queryIdSuffixChars[rand.Intn(len(queryIdSuffixChars))]
	}
	return fmt.Sprintf("%d_%s", t.Unix(), suffix)
}
