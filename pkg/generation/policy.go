package generation

import (
	"fmt"
	"sort"
	"strings"

	"ai-mediagen-be/internal/pkg/apperror"
)

type (
	ImageSize  string
	ImageModel string
	Voice      string
	Tone       string
)

const (
	ImageModelSmall ImageModel = "dall-e-2"
	ImageModelLarge ImageModel = "dall-e-3"
)

const (
	VoiceAlloy   Voice = "alloy"
	VoiceOnyx    Voice = "onyx"
	VoiceFable   Voice = "fable"
	VoiceNova    Voice = "nova"
	VoiceEcho    Voice = "echo"
	VoiceShimmer Voice = "shimmer"

	DefaultVoice = VoiceAlloy
)

var imageModelBySize = map[ImageSize]ImageModel{
	"256x256":   ImageModelSmall,
	"512x512":   ImageModelSmall,
	"1024x1024": ImageModelLarge,
	"1792x1024": ImageModelLarge,
	"1024x1792": ImageModelLarge,
}

var voiceByTone = map[Tone]Voice{
	"neutral":      VoiceAlloy,
	"professional": VoiceOnyx,
	"storytelling": VoiceFable,
	"friendly":     VoiceNova,
	"robotic":      VoiceEcho,
	"relaxing":     VoiceShimmer,
}

// SupportedImageSizes lists the accepted sizes in a stable order.
func SupportedImageSizes() []string {
	sizes := make([]string, 0, len(imageModelBySize))
	for size := range imageModelBySize {
		sizes = append(sizes, string(size))
	}
	sort.Strings(sizes)
	return sizes
}

// ModelForSize selects the model tier for a size. Sizes outside the two
// classes are rejected.
func ModelForSize(size string) (ImageSize, ImageModel, error) {
	model, ok := imageModelBySize[ImageSize(size)]
	if !ok {
		return "", "", apperror.Validation("invalid image size %q, supported sizes: %s", size, strings.Join(SupportedImageSizes(), ", "))
	}
	return ImageSize(size), model, nil
}

// VoiceForTone maps a tone to a voice. Unknown or empty tones fall back to
// the default voice.
func VoiceForTone(tone string) Voice {
	if voice, ok := voiceByTone[Tone(strings.ToLower(strings.TrimSpace(tone)))]; ok {
		return voice
	}
	return DefaultVoice
}

// PromptOptions are the optional style modifiers of an image request.
type PromptOptions struct {
	ArtStyle         string
	LightingStyle    string
	MoodStyle        string
	NegativeKeywords string
}

// ComposePrompt appends the supplied modifiers to the title in a fixed order:
// style, lighting, mood, exclusions.
func ComposePrompt(title string, opts PromptOptions) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(title))
	if v := strings.TrimSpace(opts.ArtStyle); v != "" {
		fmt.Fprintf(&b, ", in the style of %s", v)
	}
	if v := strings.TrimSpace(opts.LightingStyle); v != "" {
		fmt.Fprintf(&b, ", with %s lighting", v)
	}
	if v := strings.TrimSpace(opts.MoodStyle); v != "" {
		fmt.Fprintf(&b, ", evoking a %s mood", v)
	}
	if v := strings.TrimSpace(opts.NegativeKeywords); v != "" {
		fmt.Fprintf(&b, ", avoiding: %s", v)
	}
	return b.String()
}
