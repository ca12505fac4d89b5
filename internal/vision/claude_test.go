package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

func TestClaudeCaption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content []struct {
					Type   string `json:"type"`
					Source *struct {
						Type      string `json:"type"`
						MediaType string `json:"media_type"`
					} `json:"source"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("message shape: %+v", req)
		}
		img := req.Messages[0].Content[0]
		if img.Type != "image" || img.Source == nil ||
			img.Source.Type != "base64" || img.Source.MediaType != "image/png" {
			t.Errorf("image part: %+v", img)
		}
		if req.Messages[0].Content[1].Type != "text" {
			t.Errorf("text part: %+v", req.Messages[0].Content[1])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m",` +
			`"content":[{"type":"text","text":" a cat on a sofa "}]}`))
	}))
	defer srv.Close()

	c := &claudeCaptioner{
		client: anthropic.NewClient("test-key", anthropic.WithBaseURL(srv.URL)),
		model:  "claude-sonnet-4-6",
	}

	got, err := c.Caption(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if got != "a cat on a sofa" {
		t.Errorf("caption: got %q", got)
	}
}
