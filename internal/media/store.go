// Package media keeps the image and JSON manifest a token's metadata uri
// points to, addressed by content hash.
package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/jam1729/create-update-burn-nft/internal/model"
)

const manifestName = "metadata.json"

// FileStore writes artifacts under root and serves them from baseURL
type FileStore struct {
	root    string
	baseURL *url.URL
}

// NewFileStore creates the root directory if needed
func NewFileStore(root, baseURL string) (*FileStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media base url: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &FileStore{root: root, baseURL: u}, nil
}

// Root returns the directory artifacts are written to
func (s *FileStore) Root() string {
	return s.root
}

// PutImage stores the image blob and returns its public URI
func (s *FileStore) PutImage(_ context.Context, blob model.FileBlob) (string, error) {
	if blob.Name == "" || len(blob.Bytes) == 0 {
		return "", errors.New("empty image blob")
	}
	return s.put(contentKey(blob.Bytes), filepath.Base(blob.Name), blob.Bytes)
}

// PutManifest stores the metadata JSON and returns its public URI
func (s *FileStore) PutManifest(_ context.Context, manifest []byte) (string, error) {
	if len(manifest) == 0 {
		return "", errors.New("empty manifest")
	}
	return s.put(contentKey(manifest), manifestName, manifest)
}

func (s *FileStore) put(key, name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}
	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write media: %w", err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return "", fmt.Errorf("failed to write media: %w", err)
		}
	}

	u := *s.baseURL
	u.Path = path.Join(u.Path, key, name)
	return u.String(), nil
}

// content addressed: same bytes, same uri
func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
