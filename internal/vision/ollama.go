package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ollamaCaptioner implements Captioner against a local Ollama instance
// running a multimodal model.
type ollamaCaptioner struct {
	host   string
	model  string
	client *http.Client
}

// NewOllama creates an Ollama captioner.
func NewOllama(host, model string) Captioner {
	return &ollamaCaptioner{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// ollamaGenerateRequest is the request body for the Ollama generate API.
type ollamaGenerateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

// ollamaGenerateResponse is the non-streaming generate reply.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (o *ollamaCaptioner) Caption(ctx context.Context, image []byte, _ string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: captionPrompt,
		Images: []string{base64.StdEncoding.EncodeToString(image)},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("ollama caption marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama caption request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama caption: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama caption: unexpected status %d", resp.StatusCode)
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ollama caption decode: %w", err)
	}
	if result.Response == "" {
		return "", fmt.Errorf("ollama caption: empty response")
	}

	return strings.TrimSpace(result.Response), nil
}
