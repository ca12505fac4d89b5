// Package wiki provides the encyclopedia collaborator client and the
// paginated topic memory built on top of it.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SummaryClient is the narrow contract for the encyclopedia collaborator:
// a topic and a sentence budget in, a plain-text summary out.
type SummaryClient interface {
	Summary(ctx context.Context, topic string, sentences int) (string, error)
}

// RESTClient fetches summaries from a Wikipedia-style REST API.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a summary client for the given API base URL
// (e.g. https://en.wikipedia.org/api/rest_v1).
func NewClient(baseURL string) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// summaryResponse is the slice of the page-summary payload we care about.
type summaryResponse struct {
	Extract string `json:"extract"`
}

// Summary implements SummaryClient. The REST API has no sentence parameter,
// so the budget is applied client-side on the returned extract.
func (c *RESTClient) Summary(ctx context.Context, topic string, sentences int) (string, error) {
	title := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(topic), " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/page/summary/"+title, nil)
	if err != nil {
		return "", fmt.Errorf("wiki: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiki: summary %q: %w", topic, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiki: summary %q: unexpected status %d", topic, resp.StatusCode)
	}

	var result summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("wiki: decode: %w", err)
	}
	if result.Extract == "" {
		return "", fmt.Errorf("wiki: no summary for %q", topic)
	}

	return clipSentences(result.Extract, sentences), nil
}

// clipSentences returns the first n ". "-delimited sentences of text.
func clipSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	parts := strings.Split(text, ". ")
	if len(parts) <= n {
		return text
	}
	return strings.Join(parts[:n], ". ")
}
