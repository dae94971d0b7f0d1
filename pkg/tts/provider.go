package tts

import (
	"context"
	"fmt"
	"io"
)

// Provider synthesizes spoken audio from text. The returned reader yields
// encoded audio bytes as they arrive; the caller owns closing it.
type Provider interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

// ServiceError carries the upstream status of a failed provider call.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("tts: upstream status %d: %s", e.Status, e.Message)
}
