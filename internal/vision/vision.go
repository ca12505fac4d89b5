// Package vision provides adapters for the image captioning and object
// detection collaborators.
package vision

import (
	"context"
	"fmt"
	"strings"
)

// Provider name constants.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// captionPrompt is the instruction sent to every captioning provider.
const captionPrompt = "Describe this image in one short sentence."

// Captioner generates a one-line description of an image.
type Captioner interface {
	Caption(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Object is one detection result.
type Object struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Detector finds objects in an image.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Object, error)
}

// Options configures NewCaptioner.
type Options struct {
	Provider     string
	Model        string
	OllamaHost   string
	OpenAIKey    string
	AnthropicKey string
}

// NewCaptioner constructs the Captioner for the named provider.
func NewCaptioner(opts Options) (Captioner, error) {
	switch opts.Provider {
	case ProviderOllama:
		host := opts.OllamaHost
		if host == "" {
			host = "http://localhost:11434"
		}
		model := opts.Model
		if model == "" {
			model = "llava"
		}
		return NewOllama(host, model), nil
	case ProviderOpenAI:
		return NewOpenAI(opts.OpenAIKey, opts.Model), nil
	case ProviderClaude:
		return NewClaude(opts.AnthropicKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("vision: unknown provider %q; valid providers: ollama, openai, claude", opts.Provider)
	}
}

// weaponKeywords trigger a warning line when present in a caption.
var weaponKeywords = []string{"gun", "knife", "pistol", "bomb", "rifle"}

// WarnWeapons prefixes caption with a warning line if it mentions any of the
// weapon keywords.
func WarnWeapons(caption string) string {
	lower := strings.ToLower(caption)
	var found []string
	for _, w := range weaponKeywords {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	if len(found) == 0 {
		return caption
	}
	return fmt.Sprintf("⚠️ Warning: Possible weapon detected (%s).\n%s",
		strings.Join(found, ", "), caption)
}

// FormatDetections renders the detection suffix, keeping only objects above
// the confidence threshold of 0.5.
func FormatDetections(objects []Object) string {
	var kept []string
	for _, o := range objects {
		if o.Confidence > 0.5 {
			kept = append(kept, fmt.Sprintf("Object: %s, Confidence: %.2f", o.Label, o.Confidence))
		}
	}
	return fmt.Sprintf("Detected objects: %d. Objects: %s", len(kept), strings.Join(kept, ", "))
}
