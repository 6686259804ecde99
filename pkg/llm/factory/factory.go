package factory

import (
	"fmt"

	"legal-agent-be/pkg/llm"
	"legal-agent-be/pkg/llm/ollama"
	"legal-agent-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, openaiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(openaiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
