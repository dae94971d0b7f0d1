package vision

import (
	"context"
	"fmt"
)

// SystemInstruction frames every answer for a visually impaired user:
// describe what matters, stay brief, skip identifying strangers, and reply
// in the language the question was asked in.
const SystemInstruction = "You are an assistant for a visually impaired user. " +
	"They show you what their camera sees and ask questions about it. " +
	"Answer concisely and helpfully based on the image. " +
	"Do not identify or name people in the image. " +
	"Always answer in the same language the question was asked in."

// Provider answers a natural-language question about an image.
type Provider interface {
	Answer(ctx context.Context, imagePath, prompt string) (string, error)
}

// ServiceError carries the upstream status of a failed provider call.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("vision: upstream status %d: %s", e.Status, e.Message)
}
