package client

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockS3Client is an in-memory S3ClientInterface for tests
type MockS3Client struct {
	BucketName string

	// Optional function overrides for custom test behavior
	UploadFileFunc func(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFileFunc func(ctx context.Context, key string) error
	ListFilesFunc  func(ctx context.Context, prefix string) ([]ObjectInfo, error)

	mu      sync.Mutex
	objects map[string]ObjectInfo
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		BucketName: "test-bucket",
		objects:    make(map[string]ObjectInfo),
	}
}

// Put stores an object directly, bypassing UploadFileFunc
func (m *MockS3Client) Put(key string, size int64, lastModified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = ObjectInfo{Key: key, Size: size, LastModified: lastModified}
}

func (m *MockS3Client) Bucket() string {
	return m.BucketName
}

func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return err
	}
	m.Put(key, int64(buf.Len()), time.Now())
	return nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MockS3Client) FileExists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MockS3Client) ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ObjectInfo
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
