package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ariahq/aria/internal/vision"
)

// ErrUnsupported reports a filename extension no extractor handles.
var ErrUnsupported = errors.New("Unsupported file type")

// Kind distinguishes the two result shapes.
type Kind int

const (
	// KindCaption is an image caption (with warnings/detections folded in).
	KindCaption Kind = iota
	// KindText is extracted document text.
	KindText
)

// Result is the outcome of routing one uploaded file.
type Result struct {
	Kind    Kind
	Caption string
	Text    string
}

// Router picks the extractor for an uploaded file by extension. It is
// independent of the text dispatcher: uploads never enter the rule chain.
type Router struct {
	captioner vision.Captioner
	detector  vision.Detector // nil disables the detection suffix
	parser    DocParser
}

// NewRouter creates an upload router.
func NewRouter(captioner vision.Captioner, detector vision.Detector, parser DocParser) *Router {
	return &Router{captioner: captioner, detector: detector, parser: parser}
}

// mimeTypes maps the accepted image extensions to their MIME types.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".bmp":  "image/bmp",
}

// Route handles one uploaded file. ErrUnsupported means the extension is
// unknown; any other error is a collaborator failure.
func (r *Router) Route(ctx context.Context, filename string, data []byte) (Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if mime, ok := mimeTypes[ext]; ok {
		return r.caption(ctx, data, mime)
	}

	switch ext {
	case ".pdf", ".docx":
		text, err := r.parser.Parse(ctx, data, filename)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: KindText, Text: text}, nil

	case ".txt":
		if !utf8.Valid(data) {
			return Result{}, fmt.Errorf("extract: %s is not valid UTF-8", filename)
		}
		return Result{Kind: KindText, Text: string(data)}, nil

	default:
		return Result{}, ErrUnsupported
	}
}

// caption runs the image pipeline: caption, weapon warning, then the
// detection suffix when a detector is configured.
func (r *Router) caption(ctx context.Context, data []byte, mime string) (Result, error) {
	caption, err := r.captioner.Caption(ctx, data, mime)
	if err != nil {
		return Result{}, err
	}
	caption = vision.WarnWeapons(caption)

	if r.detector != nil {
		objects, err := r.detector.Detect(ctx, data)
		if err != nil {
			return Result{}, err
		}
		caption += "\n" + vision.FormatDetections(objects)
	}

	return Result{Kind: KindCaption, Caption: caption}, nil
}
