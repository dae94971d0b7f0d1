package stt

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type WhisperProvider struct {
	client *openai.Client
	model  string
}

var _ Provider = &WhisperProvider{}

func NewWhisperProvider(apiKey, model string) *WhisperProvider {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Transcribe sends the audio through the translation endpoint so the device
// owner always gets an English transcript regardless of spoken language.
func (p *WhisperProvider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := p.client.CreateTranslation(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
	})
	if err != nil {
		if apiErr, ok := err.(*openai.APIError); ok {
			return "", &ServiceError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}
