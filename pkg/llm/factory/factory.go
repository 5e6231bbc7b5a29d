package factory

import (
	"fmt"

	"ai-mediagen-be/internal/config"
	"ai-mediagen-be/pkg/llm"
	"ai-mediagen-be/pkg/llm/ollama"
	"ai-mediagen-be/pkg/llm/openai"
)

func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LLMProvider {
	case "", "openai":
		return openai.NewOpenAIProvider(openai.Config{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.ChatModel,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
		}), nil
	case "ollama":
		baseURL := cfg.Ai.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollama.Config{
			BaseURL:     baseURL,
			Model:       cfg.Ai.OllamaModel,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Ai.LLMProvider)
	}
}
