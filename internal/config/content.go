package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvContentTesseract  = "ESTIMATOR_CONTENT_TESSERACT"
	EnvContentOCRTimeout = "ESTIMATOR_CONTENT_OCR_TIMEOUT"
)

// ContentConfig holds raw-content extraction settings.
type ContentConfig struct {
	Tesseract  string `toml:"tesseract"`
	OCRTimeout string `toml:"ocr_timeout"`
}

// OCRTimeoutDuration returns OCRTimeout as a time.Duration.
func (c *ContentConfig) OCRTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OCRTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ContentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if _, err := time.ParseDuration(c.OCRTimeout); err != nil {
		return fmt.Errorf("invalid ocr_timeout: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ContentConfig) Merge(overlay *ContentConfig) {
	if overlay.Tesseract != "" {
		c.Tesseract = overlay.Tesseract
	}
	if overlay.OCRTimeout != "" {
		c.OCRTimeout = overlay.OCRTimeout
	}
}

func (c *ContentConfig) loadDefaults() {
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.OCRTimeout == "" {
		c.OCRTimeout = "60s"
	}
}

func (c *ContentConfig) loadEnv() {
	if v := os.Getenv(EnvContentTesseract); v != "" {
		c.Tesseract = v
	}
	if v := os.Getenv(EnvContentOCRTimeout); v != "" {
		c.OCRTimeout = v
	}
}
