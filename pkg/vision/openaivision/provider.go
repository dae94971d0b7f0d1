package openaivision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"ai-visionboard-be/pkg/vision"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client    *openai.Client
	modelName string
}

// Ensure OpenAIProvider implements Provider
var _ vision.Provider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
	}
}

func (p *OpenAIProvider) Answer(ctx context.Context, imagePath, prompt string) (string, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: vision.SystemInstruction,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	})
	if err != nil {
		if apiErr, ok := err.(*openai.APIError); ok {
			return "", &vision.ServiceError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
