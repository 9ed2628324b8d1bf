// Package storage provides object storage implementations for product images.
package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/lewisgroup/storefront/internal/application/catalog"
)

// Ensure StubImageStore implements ImageStore
var _ catalogapp.ImageStore = (*StubImageStore)(nil)

// StubImageStore keeps images in memory. Used when object storage is
// disabled in configuration and in tests.
type StubImageStore struct {
	// BaseURL is the base URL for generated image URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubImageStore creates a new StubImageStore
func NewStubImageStore() *StubImageStore {
	return &StubImageStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the image in memory and returns a synthetic URL
func (s *StubImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.BaseURL + "/" + key, nil
}

// Delete removes the image from memory
func (s *StubImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists reports whether the image is held in memory
func (s *StubImageStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}
