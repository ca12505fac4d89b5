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

// HTTPDetector implements Detector against the object-detection sidecar
// service (a pretrained detection network behind a small HTTP API).
type HTTPDetector struct {
	baseURL string
	client  *http.Client
}

// NewDetector creates a detection client.
func NewDetector(baseURL string) *HTTPDetector {
	return &HTTPDetector{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// detectRequest is the request body for the sidecar's /detect endpoint.
type detectRequest struct {
	Image string `json:"image"` // base64
}

// detectResponse is the sidecar's reply.
type detectResponse struct {
	Objects []Object `json:"objects"`
	Error   string   `json:"error,omitempty"`
}

// Detect implements Detector.
func (d *HTTPDetector) Detect(ctx context.Context, image []byte) ([]Object, error) {
	body, err := json.Marshal(detectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("detect marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detect: unexpected status %d", resp.StatusCode)
	}

	var result detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("detect decode: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("detect: %s", result.Error)
	}

	return result.Objects, nil
}
