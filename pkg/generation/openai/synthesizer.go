package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ai-mediagen-be/pkg/generation"
	llmopenai "ai-mediagen-be/pkg/llm/openai"

	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	APIKey      string
	BaseURL     string
	SpeechModel string
	HTTPClient  *http.Client
}

// Synthesizer implements image and speech synthesis on the OpenAI API.
type Synthesizer struct {
	client      *openai.Client
	speechModel openai.SpeechModel
}

var (
	_ generation.ImageSynthesizer  = &Synthesizer{}
	_ generation.SpeechSynthesizer = &Synthesizer{}
)

func NewSynthesizer(cfg Config) *Synthesizer {
	speechModel := openai.TTSModel1
	if cfg.SpeechModel != "" {
		speechModel = openai.SpeechModel(cfg.SpeechModel)
	}
	return &Synthesizer{
		client:      llmopenai.NewClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient),
		speechModel: speechModel,
	}
}

func (s *Synthesizer) SynthesizeImage(ctx context.Context, prompt string, size generation.ImageSize, model generation.ImageModel) (string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          string(model),
		N:              1,
		Size:           string(size),
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", llmopenai.WrapError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", llmopenai.WrapError(errors.New("image response contained no url"))
	}
	return resp.Data[0].URL, nil
}

func (s *Synthesizer) SynthesizeSpeech(ctx context.Context, text string, voice generation.Voice) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.speechModel,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, llmopenai.WrapError(err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, llmopenai.WrapError(fmt.Errorf("read speech audio: %w", err))
	}
	return audio, nil
}
