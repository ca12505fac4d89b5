// Package server exposes the assistant over HTTP: the chat page, the chat
// endpoint and the upload endpoint.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ariahq/aria/internal/extract"
	"github.com/ariahq/aria/internal/speech"
)

//go:embed web/index.html
var webFS embed.FS

// maxUploadBytes caps multipart uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// Dispatcher answers one utterance.
type Dispatcher interface {
	Dispatch(ctx context.Context, message string) string
}

// Server wires the assistant, the upload router and the optional speech
// collaborator into an http.Handler.
type Server struct {
	assistant Dispatcher
	uploads   *extract.Router
	tts       speech.Synthesizer // nil disables /speak
	log       *zap.Logger
}

// New creates a Server.
func New(assistant Dispatcher, uploads *extract.Router, tts speech.Synthesizer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{assistant: assistant, uploads: uploads, tts: tts, log: log}
}

// Handler returns the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/speak", s.handleSpeak)
	return s.logRequests(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "chat page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// chatRequest is the /chat request body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse carries either prose or an action sentinel.
type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error", "message": "invalid JSON body",
		})
		return
	}

	reply := s.assistant.Dispatch(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "no file uploaded"})
		return
	}

	// Either field name is accepted; "file" wins when both are present.
	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("image")
	}
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "no file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "error", "message": err.Error(),
		})
		return
	}

	result, err := s.uploads.Route(r.Context(), header.Filename, data)
	switch {
	case errors.Is(err, extract.ErrUnsupported):
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "error", "message": "Unsupported file type",
		})
	case err != nil:
		s.log.Warn("upload extraction failed",
			zap.String("filename", header.Filename), zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "error", "message": err.Error(),
		})
	case result.Kind == extract.KindCaption:
		writeJSON(w, http.StatusOK, map[string]string{"caption": result.Caption})
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"type": "text", "result": result.Text,
		})
	}
}

// speakRequest is the /speak request body.
type speakRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if s.tts == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error", "message": "speech synthesis not configured",
		})
		return
	}

	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error", "message": "missing text",
		})
		return
	}

	audio, err := s.tts.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.log.Warn("speech synthesis failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "error", "message": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Write(audio)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String("id", uuid.NewString()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
