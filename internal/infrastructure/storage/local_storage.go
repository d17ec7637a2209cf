// Package storage provides object storage implementations for invoice
// attachments and product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billingapp "github.com/paintdesk/backend/internal/application/billing"
	catalogapp "github.com/paintdesk/backend/internal/application/catalog"
)

// Ensure LocalStorage satisfies both storage consumers
var _ billingapp.AttachmentStorage = (*LocalStorage)(nil)
var _ catalogapp.ObjectStorageService = (*LocalStorage)(nil)

// LocalStorage stores files on the local filesystem. It is the default
// backend for single-machine shop deployments where no S3-compatible
// service is available.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a LocalStorage rooted at baseDir. Returned
// URLs are baseURL + "/" + key; baseURL defaults to "/files".
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if baseURL == "" {
		baseURL = "/files"
	}

	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the object to disk and returns its URL
func (s *LocalStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes an object from disk. Deleting a missing object is not
// an error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// resolve maps a storage key to a filesystem path, rejecting keys that
// escape the base directory.
func (s *LocalStorage) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", errors.New("invalid storage key")
	}

	return filepath.Join(s.baseDir, cleaned), nil
}
