// Package capture renders named elements (image files, QR codes, registered
// renderers) into PNG file blobs.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/sasha-s/go-deadlock"
	"github.com/skip2/go-qrcode"
)

const (
	qrPrefix = "qr:"
	qrSize   = 256
)

// ErrNotFound is returned when an element id does not resolve to anything renderable
var ErrNotFound = errors.New("element not found")

var fileExts = []string{".png", ".jpg", ".jpeg"}

// Renderer produces the current visual state of an element
type Renderer func() (image.Image, error)

// Capturer resolves element ids to images and encodes them as PNG blobs
type Capturer struct {
	dir      string
	fileName string

	mu        deadlock.RWMutex
	renderers map[string]Renderer
}

// New creates a Capturer reading image elements from dir.
// Every captured blob is named fileName.
func New(dir, fileName string) *Capturer {
	return &Capturer{
		dir:       dir,
		fileName:  fileName,
		renderers: make(map[string]Renderer),
	}
}

// Register binds an element id to a renderer. Registered elements shadow files.
func (c *Capturer) Register(elementID string, r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderers[elementID] = r
}

// Capture renders the element and returns it as a PNG blob
func (c *Capturer) Capture(elementID string) (model.FileBlob, error) {
	elementID = strings.TrimSpace(elementID)
	if elementID == "" {
		return model.FileBlob{}, fmt.Errorf("empty element id: %w", ErrNotFound)
	}

	c.mu.RLock()
	r, ok := c.renderers[elementID]
	c.mu.RUnlock()

	var (
		data []byte
		err  error
	)
	switch {
	case ok:
		data, err = renderPNG(r)
	case strings.HasPrefix(elementID, qrPrefix):
		data, err = renderQR(strings.TrimPrefix(elementID, qrPrefix))
	default:
		data, err = c.renderFile(elementID)
	}
	if err != nil {
		return model.FileBlob{}, err
	}

	return model.FileBlob{
		Name:  c.fileName,
		Bytes: data,
	}, nil
}

func (c *Capturer) renderFile(elementID string) ([]byte, error) {
	// element ids are bare names, never paths
	if elementID != filepath.Base(elementID) || elementID == "." || elementID == ".." {
		return nil, fmt.Errorf("element %q: %w", elementID, ErrNotFound)
	}
	for _, ext := range fileExts {
		f, err := os.Open(filepath.Join(c.dir, elementID+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open element %q: %w", elementID, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode element %q: %w", elementID, err)
		}
		return encodePNG(img)
	}
	return nil, fmt.Errorf("element %q: %w", elementID, ErrNotFound)
}

func renderPNG(r Renderer) ([]byte, error) {
	img, err := r()
	if err != nil {
		return nil, fmt.Errorf("failed to render element: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("renderer returned no image: %w", ErrNotFound)
	}
	return encodePNG(img)
}

func renderQR(text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty qr content: %w", ErrNotFound)
	}
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	data, err := qr.PNG(qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return data, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
