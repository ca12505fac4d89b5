// Package extract routes uploaded files to the captioning pipeline or a
// text extractor, keyed purely on the filename extension.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DocParser extracts plain text from binary document formats.
type DocParser interface {
	Parse(ctx context.Context, data []byte, filename string) (string, error)
}

// SidecarParser implements DocParser by calling the external parse service
// (PDF/DOCX extraction runs out of process).
type SidecarParser struct {
	baseURL string
	client  *http.Client
}

// NewSidecarParser creates a parse-service client.
func NewSidecarParser(baseURL string) *SidecarParser {
	return &SidecarParser{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// parseResponse is the parse service response format.
type parseResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// Parse sends the raw document bytes to the service and returns the
// extracted text.
func (p *SidecarParser) Parse(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/parse", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("extract: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Filename", filename)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract: parse %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("extract: parse %s: status %d: %s", filename, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("extract: decode: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("extract: parse %s: %s", filename, result.Error)
	}

	return result.Text, nil
}
