package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MockMediaStorage implements MediaStorage in memory for tests and for
// running without a bucket
type MockMediaStorage struct {
	Bucket string
	Region string

	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string

	// Optional function overrides for custom test behavior
	UploadFileFunc func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc func(ctx context.Context, key string) error
}

// NewMockMediaStorage creates an empty in-memory store
func NewMockMediaStorage() *MockMediaStorage {
	return &MockMediaStorage{
		Bucket:  "test-bucket",
		Region:  "ap-northeast-2",
		Objects: make(map[string][]byte),
	}
}

func (m *MockMediaStorage) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	return generateFileKey(time.Now(), kind, ownerID, fileExt)
}

func (m *MockMediaStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	m.mu.Lock()
	m.Objects[key] = data
	m.mu.Unlock()
	return m.GetFileURL(key), nil
}

func (m *MockMediaStorage) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.mu.Lock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	m.mu.Unlock()
	return nil
}

func (m *MockMediaStorage) GetFileURL(key string) string {
	return fileURL("", m.Bucket, m.Region, key)
}

// Has reports whether key is currently stored
func (m *MockMediaStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

var _ MediaStorage = (*MockMediaStorage)(nil)
