// Package generation holds the media synthesis contracts and the fixed
// selection policy that maps user choices onto upstream models and voices.
package generation

import "context"

// ImageSynthesizer produces an image and returns a short-lived URL to it.
type ImageSynthesizer interface {
	SynthesizeImage(ctx context.Context, prompt string, size ImageSize, model ImageModel) (string, error)
}

// SpeechSynthesizer renders text as mp3 audio.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string, voice Voice) ([]byte, error)
}
