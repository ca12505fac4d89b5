package cli

import (
	"fmt"

	"github.com/ariahq/aria/internal/algebra"
	"github.com/ariahq/aria/internal/config"
	"github.com/ariahq/aria/internal/dispatch"
	"github.com/ariahq/aria/internal/extract"
	"github.com/ariahq/aria/internal/mathexpr"
	"github.com/ariahq/aria/internal/snippet"
	"github.com/ariahq/aria/internal/speech"
	"github.com/ariahq/aria/internal/vision"
	"github.com/ariahq/aria/internal/wiki"
)

// buildAssistant wires the dispatcher and its handlers from the config.
// requireSnippets makes a missing snippet file fatal; the one-shot ask
// command instead degrades to an empty table.
func buildAssistant(cfg config.Config, requireSnippets bool) (*dispatch.Assistant, *snippet.Store, error) {
	snippets, err := snippet.Load(cfg.Snippets.Path)
	if err != nil {
		if requireSnippets {
			return nil, nil, fmt.Errorf("load snippet table: %w", err)
		}
		snippets = snippet.Empty(cfg.Snippets.Path)
	}

	assistant := dispatch.New(dispatch.Options{
		Snippets: snippets,
		Math:     mathexpr.New(),
		Algebra:  algebra.NewRouter(algebra.NewClient(cfg.Algebra.URL)),
		Wiki:     wiki.NewPager(wiki.NewClient(cfg.Wiki.URL)),
	})
	return assistant, snippets, nil
}

// buildUploadRouter wires the file-upload pipeline from the config.
func buildUploadRouter(cfg config.Config) (*extract.Router, error) {
	captioner, err := vision.NewCaptioner(vision.Options{
		Provider:     cfg.Vision.Provider,
		Model:        cfg.Vision.CaptionModel,
		OllamaHost:   cfg.Vision.OllamaHost,
		OpenAIKey:    cfg.Keys.OpenAI,
		AnthropicKey: cfg.Keys.Anthropic,
	})
	if err != nil {
		return nil, err
	}

	var detector vision.Detector
	if cfg.Vision.DetectorURL != "" {
		detector = vision.NewDetector(cfg.Vision.DetectorURL)
	}

	return extract.NewRouter(captioner, detector, extract.NewSidecarParser(cfg.Extract.ParserURL)), nil
}

// buildSynthesizer returns the TTS client, or nil when unconfigured.
func buildSynthesizer(cfg config.Config) speech.Synthesizer {
	if cfg.Speech.URL == "" {
		return nil
	}
	return speech.NewClient(cfg.Speech.URL)
}
