package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "gpt-4-turbo", cfg.OpenAI.ChatModel)
	assert.Equal(t, 400, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "tts-1", cfg.OpenAI.SpeechModel)
	assert.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)
	assert.True(t, cfg.App.EnforceOwnership)
	assert.Equal(t, 2*time.Minute, cfg.Generation.Timeout)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MAX_TOKENS", "128")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("ENFORCE_OWNERSHIP", "false")
	t.Setenv("GENERATION_TIMEOUT", "15s")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 128, cfg.OpenAI.MaxTokens)
	assert.InDelta(t, 0.2, cfg.OpenAI.Temperature, 1e-9)
	assert.False(t, cfg.App.EnforceOwnership)
	assert.Equal(t, 15*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
	assert.Equal(t, 2525, cfg.SMTP.Port)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("GENERATION_TIMEOUT", "-5s")
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 2*time.Minute, cfg.Generation.Timeout)
	assert.False(t, cfg.Telemetry.Enabled)
}
