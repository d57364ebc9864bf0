//go:build !ocr

// Package ocr wraps the Tesseract engine for extracting text from raster
// images. This stub build is used when the "ocr" build tag is not set: all
// operations report ErrNotEnabled and image inputs degrade to placeholder
// blocks. Rebuild with -tags ocr (Tesseract installed) to enable OCR.
package ocr

import "errors"

// ErrNotEnabled is returned when OCR is called but support was not
// compiled in.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client is the stub OCR client.
type Client struct{}

// New returns ErrNotEnabled; there is no usable client in this build.
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op, safe on a nil client.
func (c *Client) Close() error { return nil }

// SetLanguages returns ErrNotEnabled.
func (c *Client) SetLanguages(langs string) error { return ErrNotEnabled }

// Recognize returns ErrNotEnabled.
func (c *Client) Recognize(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}
