// Package content recovers order text from uploaded documents and inspects
// image resolution. Every operation degrades to an empty result instead of
// failing so intake can continue with whatever text it has.
package content

import (
	"context"
	"log/slog"
	"time"
)

// Config controls external OCR execution.
type Config struct {
	Tesseract  string
	OCRTimeout time.Duration
}

// Extractor reads text from PDF and image uploads.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// New creates an Extractor. A nil runner executes commands on the host.
func New(cfg Config, runner Runner, logger *slog.Logger) *Extractor {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 60 * time.Second
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Extractor{
		cfg:    cfg,
		runner: runner,
		logger: logger.With("system", "content"),
	}
}

// ImageDPI returns the horizontal and vertical resolution recorded in a PNG
// or JPEG header, or (72, 72) when none is recorded.
func (e *Extractor) ImageDPI(data []byte) (int, int) {
	return ImageDPI(data)
}

// Text dispatches on content type: PDFs yield their text, images their OCR
// output. Other types yield "".
func (e *Extractor) Text(ctx context.Context, contentType string, data []byte) string {
	switch {
	case IsPDF(contentType):
		return e.PDFText(data)
	case IsImage(contentType):
		return e.ImageText(ctx, data)
	}
	return ""
}
