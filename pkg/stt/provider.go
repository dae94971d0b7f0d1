package stt

import (
	"context"
	"fmt"
)

// Provider turns a recorded audio file into text.
type Provider interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ServiceError carries the upstream status of a failed provider call.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("stt: upstream status %d: %s", e.Status, e.Message)
}
