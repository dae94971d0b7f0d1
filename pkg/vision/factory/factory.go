package factory

import (
	"fmt"

	"ai-visionboard-be/pkg/vision"
	"ai-visionboard-be/pkg/vision/anthropic"
	"ai-visionboard-be/pkg/vision/openaivision"
)

func NewVisionProvider(providerType, modelName, anthropicKey, openaiKey string) (vision.Provider, error) {
	switch providerType {
	case "anthropic":
		if modelName == "" {
			modelName = "claude-3-haiku-20240307" // Default
		}
		return anthropic.NewAnthropicProvider(anthropicKey, modelName), nil
	case "openai":
		if modelName == "" {
			modelName = "gpt-4o-mini"
		}
		return openaivision.NewOpenAIProvider(openaiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", providerType)
	}
}
