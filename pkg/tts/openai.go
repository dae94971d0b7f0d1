package tts

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

var _ Provider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, model, voice string) *OpenAIProvider {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

// Synthesize returns the raw mp3 stream from the speech endpoint without
// buffering it, so the transport can start relaying immediately.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: p.model,
		Input: text,
		Voice: p.voice,
	})
	if err != nil {
		if apiErr, ok := err.(*openai.APIError); ok {
			return nil, &ServiceError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return nil, err
	}

	return resp, nil
}
