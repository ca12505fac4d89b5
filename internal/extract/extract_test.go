package extract

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariahq/aria/internal/vision"
)

type fakeCaptioner struct {
	caption string
	err     error
}

func (f *fakeCaptioner) Caption(_ context.Context, _ []byte, _ string) (string, error) {
	return f.caption, f.err
}

type fakeDetector struct {
	objects []vision.Object
	err     error
}

func (f *fakeDetector) Detect(_ context.Context, _ []byte) ([]vision.Object, error) {
	return f.objects, f.err
}

type fakeParser struct {
	text string
	err  error
}

func (f *fakeParser) Parse(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

func TestRouteImageCaption(t *testing.T) {
	r := NewRouter(&fakeCaptioner{caption: "a dog in a park"}, nil, &fakeParser{})

	res, err := r.Route(context.Background(), "photo.JPG", []byte{1})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if res.Kind != KindCaption || res.Caption != "a dog in a park" {
		t.Errorf("result: %+v", res)
	}
}

func TestRouteImageWeaponWarning(t *testing.T) {
	r := NewRouter(&fakeCaptioner{caption: "a man holding a rifle"}, nil, &fakeParser{})

	res, err := r.Route(context.Background(), "photo.png", []byte{1})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !strings.HasPrefix(res.Caption, "⚠️ Warning: Possible weapon detected (rifle).") {
		t.Errorf("caption: %q", res.Caption)
	}
}

func TestRouteImageWithDetector(t *testing.T) {
	det := &fakeDetector{objects: []vision.Object{
		{Label: "person", Confidence: 0.92},
		{Label: "tree", Confidence: 0.4},
	}}
	r := NewRouter(&fakeCaptioner{caption: "a person outdoors"}, det, &fakeParser{})

	res, err := r.Route(context.Background(), "photo.bmp", []byte{1})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	want := "a person outdoors\nDetected objects: 1. Objects: Object: person, Confidence: 0.92"
	if res.Caption != want {
		t.Errorf("caption: got %q, want %q", res.Caption, want)
	}
}

func TestRouteDocuments(t *testing.T) {
	r := NewRouter(&fakeCaptioner{}, nil, &fakeParser{text: "extracted body"})

	for _, name := range []string{"report.pdf", "notes.DOCX"} {
		res, err := r.Route(context.Background(), name, []byte{1})
		if err != nil {
			t.Fatalf("Route(%q): %v", name, err)
		}
		if res.Kind != KindText || res.Text != "extracted body" {
			t.Errorf("Route(%q): %+v", name, res)
		}
	}
}

func TestRouteTxt(t *testing.T) {
	r := NewRouter(&fakeCaptioner{}, nil, &fakeParser{})

	res, err := r.Route(context.Background(), "hello.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if res.Kind != KindText || res.Text != "hello" {
		t.Errorf("result: %+v", res)
	}

	if _, err := r.Route(context.Background(), "bad.txt", []byte{0xff, 0xfe}); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestRouteUnsupported(t *testing.T) {
	r := NewRouter(&fakeCaptioner{}, nil, &fakeParser{})

	_, err := r.Route(context.Background(), "archive.xyz", []byte{1})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestRouteCollaboratorFailures(t *testing.T) {
	boom := errors.New("boom")

	r := NewRouter(&fakeCaptioner{err: boom}, nil, &fakeParser{})
	if _, err := r.Route(context.Background(), "a.png", []byte{1}); !errors.Is(err, boom) {
		t.Errorf("caption failure: %v", err)
	}

	r = NewRouter(&fakeCaptioner{caption: "ok"}, &fakeDetector{err: boom}, &fakeParser{})
	if _, err := r.Route(context.Background(), "a.png", []byte{1}); !errors.Is(err, boom) {
		t.Errorf("detector failure: %v", err)
	}

	r = NewRouter(&fakeCaptioner{}, nil, &fakeParser{err: boom})
	if _, err := r.Route(context.Background(), "a.pdf", []byte{1}); !errors.Is(err, boom) {
		t.Errorf("parser failure: %v", err)
	}
}

func TestSidecarParser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Filename"); got != "report.pdf" {
			t.Errorf("filename header: got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "%PDF-raw" {
			t.Errorf("body: got %q", body)
		}
		json.NewEncoder(w).Encode(parseResponse{Text: "page one text", Pages: 1})
	}))
	defer srv.Close()

	got, err := NewSidecarParser(srv.URL).Parse(context.Background(), []byte("%PDF-raw"), "report.pdf")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "page one text" {
		t.Errorf("text: got %q", got)
	}
}

func TestSidecarParserErrors(t *testing.T) {
	t.Run("error field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(parseResponse{Error: "encrypted PDF"})
		}))
		defer srv.Close()

		if _, err := NewSidecarParser(srv.URL).Parse(context.Background(), []byte{1}, "a.pdf"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "busy", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		if _, err := NewSidecarParser(srv.URL).Parse(context.Background(), []byte{1}, "a.pdf"); err == nil {
			t.Error("expected error")
		}
	})
}
