// Package images stores provider-generated store images and computes
// their BlurHash placeholders.
package images

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage manages image files on disk, one per store.
// Safe for concurrent use.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates image storage under {basePath}/images.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	storagePath := filepath.Join(basePath, "images")
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}

	return &Storage{basePath: storagePath}, nil
}

// Save writes image data for a store.
func (s *Storage) Save(storeID string, data []byte) error {
	if storeID == "" {
		return fmt.Errorf("store id cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(storeID), data, 0o644); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

// Get reads image data for a store.
func (s *Storage) Get(storeID string) ([]byte, error) {
	if storeID == "" {
		return nil, fmt.Errorf("store id cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(storeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", storeID, err)
		}
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return data, nil
}

// Exists reports whether a store has a saved image.
func (s *Storage) Exists(storeID string) bool {
	if storeID == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(storeID))
	return err == nil
}

// Delete removes a store's image. Missing files are not an error.
func (s *Storage) Delete(storeID string) error {
	if storeID == "" {
		return fmt.Errorf("store id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(storeID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

// Hash returns the hex SHA256 of a store's image, for ETag validation.
func (s *Storage) Hash(storeID string) (string, error) {
	data, err := s.Get(storeID)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}

// Path returns the filesystem path for a store's image.
func (s *Storage) Path(storeID string) string {
	return filepath.Join(s.basePath, storeID+".img")
}
