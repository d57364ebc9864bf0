//go:build ocr

// Package ocr wraps the Tesseract engine (via gosseract) for extracting
// text from raster images. It requires Tesseract to be installed:
//
//	apt-get install tesseract-ocr
//
// Builds without the "ocr" tag get a stub that reports OCR as unavailable,
// so the service runs without cgo or a Tesseract install.
package ocr

import (
	"errors"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// ErrNotEnabled is returned by the stub build; it never occurs here but is
// declared in both builds so callers can test for it unconditionally.
var ErrNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client wraps a Tesseract session. Tesseract holds one image per session,
// so a mutex serializes recognition calls; the Client is safe for
// concurrent use.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates an OCR client. Close it to release the Tesseract session.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguages sets recognition languages, e.g. "eng" or "eng+fra".
func (c *Client) SetLanguages(langs string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetLanguage(strings.Split(langs, "+")...)
}

// Recognize runs OCR over encoded image bytes (PNG, JPEG, TIFF, ...) and
// returns the recognized text with surrounding whitespace trimmed. The
// set-image/extract pair runs under the lock so concurrent requests never
// interleave on the session.
func (c *Client) Recognize(imageData []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", err
	}
	text, err := c.client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
