package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/audiozoom/backend/internal/domain/shared"
)

// DefaultMemoryBaseURL prefixes URLs returned by MemoryObjectStorage
const DefaultMemoryBaseURL = "http://localhost:5000/uploads"

// MemoryObjectStorage keeps objects in memory. Used for local development
// (storage.driver = "memory") and tests.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]MemoryObject
}

// MemoryObject is a stored object
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = DefaultMemoryBaseURL
	}
	return &MemoryObjectStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

var _ shared.ObjectStorage = (*MemoryObjectStorage)(nil)

// Upload stores the object and returns its URL
func (m *MemoryObjectStorage) Upload(ctx context.Context, key string, body io.ReadSeeker, _ int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload body: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = MemoryObject{Data: data, ContentType: contentType}
	m.mu.Unlock()

	return m.baseURL + "/" + key, nil
}

// Delete removes the object behind objectURL, if any
func (m *MemoryObjectStorage) Delete(_ context.Context, objectURL string) error {
	key := strings.TrimPrefix(objectURL, m.baseURL+"/")
	if key == objectURL {
		return nil
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Get returns a stored object by key
func (m *MemoryObjectStorage) Get(key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (m *MemoryObjectStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Ping always succeeds
func (m *MemoryObjectStorage) Ping(context.Context) error {
	return nil
}
