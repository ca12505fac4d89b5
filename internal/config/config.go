// Package config manages the aria configuration file
// (~/.config/aria/config.toml) and its defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all settings for the assistant server and its collaborators.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Keys     KeysConfig     `toml:"keys"`
	Vision   VisionConfig   `toml:"vision"`
	Algebra  AlgebraConfig  `toml:"algebra"`
	Wiki     WikiConfig     `toml:"wiki"`
	Snippets SnippetsConfig `toml:"snippets"`
	Extract  ExtractConfig  `toml:"extract"`
	Speech   SpeechConfig   `toml:"speech"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// KeysConfig holds provider API keys. Environment variables win over the file.
type KeysConfig struct {
	OpenAI    string `toml:"openai"`
	Anthropic string `toml:"anthropic"`
}

// VisionConfig selects the captioning provider and the detector service.
type VisionConfig struct {
	Provider     string `toml:"provider"` // "ollama", "openai", "claude"
	OllamaHost   string `toml:"ollama_host"`
	CaptionModel string `toml:"caption_model"`
	DetectorURL  string `toml:"detector_url"` // empty disables object detection
}

// AlgebraConfig points at the symbolic-algebra sidecar service.
type AlgebraConfig struct {
	URL string `toml:"url"`
}

// WikiConfig points at the encyclopedia summary API.
type WikiConfig struct {
	URL string `toml:"url"`
}

// SnippetsConfig locates the code-snippet table and tunes its hot reload.
type SnippetsConfig struct {
	Path       string `toml:"path"`
	DebounceMs int    `toml:"debounce_ms"`
}

// ExtractConfig points at the document-parse sidecar service.
type ExtractConfig struct {
	ParserURL string `toml:"parser_url"`
}

// SpeechConfig points at the text-to-speech service.
type SpeechConfig struct {
	URL string `toml:"url"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Vision: VisionConfig{
			Provider:     "ollama",
			OllamaHost:   "http://localhost:11434",
			CaptionModel: "llava",
		},
		Algebra: AlgebraConfig{
			URL: "http://localhost:8091",
		},
		Wiki: WikiConfig{
			URL: "https://en.wikipedia.org/api/rest_v1",
		},
		Snippets: SnippetsConfig{
			Path:       "programs.json",
			DebounceMs: 300,
		},
		Extract: ExtractConfig{
			ParserURL: "http://localhost:8092",
		},
		Speech: SpeechConfig{
			URL: "http://localhost:8093",
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "aria", "config.toml"), nil
}

// Load reads the config file at path, applying defaults for any missing
// values. An empty path means the default location; a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return applyEnv(cfg), nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return applyEnv(cfg), nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}

	return applyEnv(cfg), nil
}

// applyEnv lets env vars override config file API keys.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	return cfg
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
