package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/pkg/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeImage(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"url":"https://cdn.example.com/tmp/abc.png"}]}`))
	}))
	defer server.Close()

	s := NewSynthesizer(Config{APIKey: "k", BaseURL: server.URL})
	url, err := s.SynthesizeImage(context.Background(), "a fox", "512x512", generation.ImageModelSmall)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tmp/abc.png", url)
	assert.Equal(t, "dall-e-2", captured["model"])
	assert.Equal(t, "512x512", captured["size"])
	assert.Equal(t, "a fox", captured["prompt"])
	assert.EqualValues(t, 1, captured["n"])
}

func TestSynthesizeImageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Your request was rejected by the safety system.","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	s := NewSynthesizer(Config{APIKey: "k", BaseURL: server.URL})
	_, err := s.SynthesizeImage(context.Background(), "x", "1024x1024", generation.ImageModelLarge)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrExternalService))
	assert.Contains(t, err.Error(), "rejected by the safety system")
}

func TestSynthesizeSpeech(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	s := NewSynthesizer(Config{APIKey: "k", BaseURL: server.URL})
	audio, err := s.SynthesizeSpeech(context.Background(), "hello world", generation.VoiceFable)

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-fake-mp3"), audio)
	assert.Equal(t, "tts-1", captured["model"])
	assert.Equal(t, "fable", captured["voice"])
	assert.Equal(t, "mp3", captured["response_format"])
}
