package content

import (
	"context"
	"os"
	"strings"
	"time"
)

// ImageText runs tesseract over an image and returns the recognized text.
// Any failure yields "".
func (e *Extractor) ImageText(ctx context.Context, data []byte) string {
	f, err := os.CreateTemp("", "estimator-ocr-*")
	if err != nil {
		e.logger.Warn("ocr temp file failed", "error", err)
		return ""
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		e.logger.Warn("ocr temp write failed", "error", err)
		return ""
	}
	f.Close()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.OCRTimeout)
	defer cancel()

	start := time.Now()
	out, stderr, err := e.runner.Run(ctx, e.cfg.Tesseract, f.Name(), "stdout")
	if err != nil {
		e.logger.Warn("ocr failed",
			"cmd", e.cfg.Tesseract,
			"error", err,
			"stderr", truncate(string(stderr), 8<<10),
		)
		return ""
	}

	e.logger.Debug("ocr ok", "duration_ms", time.Since(start).Milliseconds(), "bytes", len(out))
	return strings.TrimSpace(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
