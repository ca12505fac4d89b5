package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewCaptioner(t *testing.T) {
	for _, provider := range []string{ProviderOllama, ProviderOpenAI, ProviderClaude} {
		c, err := NewCaptioner(Options{Provider: provider, OpenAIKey: "k", AnthropicKey: "k"})
		if err != nil {
			t.Errorf("NewCaptioner(%q): %v", provider, err)
		}
		if c == nil {
			t.Errorf("NewCaptioner(%q) returned nil", provider)
		}
	}

	if _, err := NewCaptioner(Options{Provider: "invalid"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestWarnWeapons(t *testing.T) {
	tests := []struct {
		caption string
		warned  bool
		words   string
	}{
		{"a dog playing in the park", false, ""},
		{"a man holding a gun", true, "gun"},
		{"a Pistol and a Knife on a table", true, "knife, pistol"},
	}

	for _, tt := range tests {
		got := WarnWeapons(tt.caption)
		if tt.warned {
			want := "⚠️ Warning: Possible weapon detected (" + tt.words + ")."
			if !strings.HasPrefix(got, want) {
				t.Errorf("WarnWeapons(%q) = %q, want prefix %q", tt.caption, got, want)
			}
			if !strings.HasSuffix(got, tt.caption) {
				t.Errorf("WarnWeapons(%q) lost the caption: %q", tt.caption, got)
			}
		} else if got != tt.caption {
			t.Errorf("WarnWeapons(%q) = %q, want unchanged", tt.caption, got)
		}
	}
}

func TestFormatDetections(t *testing.T) {
	objects := []Object{
		{Label: "person", Confidence: 0.97},
		{Label: "bicycle", Confidence: 0.5}, // at the threshold, dropped
		{Label: "dog", Confidence: 0.81},
		{Label: "kite", Confidence: 0.12},
	}

	got := FormatDetections(objects)
	want := "Detected objects: 2. Objects: Object: person, Confidence: 0.97, Object: dog, Confidence: 0.81"
	if got != want {
		t.Errorf("FormatDetections = %q, want %q", got, want)
	}
}

func TestFormatDetectionsEmpty(t *testing.T) {
	got := FormatDetections(nil)
	if got != "Detected objects: 0. Objects: " {
		t.Errorf("FormatDetections(nil) = %q", got)
	}
}

func TestOllamaCaption(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Model != "llava" || req.Stream {
			t.Errorf("request: %+v", req)
		}
		if len(req.Images) != 1 || req.Images[0] != base64.StdEncoding.EncodeToString(image) {
			t.Error("image not base64-encoded in request")
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: " a cat on a sofa \n"})
	}))
	defer srv.Close()

	got, err := NewOllama(srv.URL, "llava").Caption(context.Background(), image, "image/png")
	if err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if got != "a cat on a sofa" {
		t.Errorf("caption: got %q", got)
	}
}

func TestOllamaCaptionBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewOllama(srv.URL, "llava").Caption(context.Background(), []byte{1}, "image/png"); err == nil {
		t.Error("expected error")
	}
}

func TestHTTPDetector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(detectResponse{Objects: []Object{
			{Label: "person", Confidence: 0.9},
			{Label: "dog", Confidence: 0.3},
		}})
	}))
	defer srv.Close()

	objects, err := NewDetector(srv.URL).Detect(context.Background(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(objects) != 2 || objects[0].Label != "person" {
		t.Errorf("objects: %+v", objects)
	}
}

func TestHTTPDetectorServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detectResponse{Error: "model not loaded"})
	}))
	defer srv.Close()

	if _, err := NewDetector(srv.URL).Detect(context.Background(), []byte{1}); err == nil {
		t.Error("expected error")
	}
}
