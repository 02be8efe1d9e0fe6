package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-team-api/internal/config"
)

type recordedCall struct {
	endpoint, method string
	status           int
	err              error
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error) {
	f.calls = append(f.calls, recordedCall{endpoint, method, statusCode, err})
}

func TestNewS3Client_Validation(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.S3Config
		errContains string
	}{
		{"실패: bucket 누락", config.S3Config{Region: "ap-northeast-2"}, "bucket is required"},
		{"실패: region 누락", config.S3Config{Bucket: "b"}, "region is required"},
		{"실패: MinIO endpoint에 자격 증명 누락", config.S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000"}, "access key and secret key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewS3Client(&tt.cfg, nil)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestNewS3Client_MinIO(t *testing.T) {
	c, err := NewS3Client(&config.S3Config{
		Bucket:    "uploads",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "uploads", c.Bucket())
}

func TestS3Client_RecordsCallOutcome(t *testing.T) {
	rec := &fakeRecorder{}
	c := &S3Client{bucket: "uploads", recorder: rec}

	c.record("DeleteObject", time.Now(), nil)
	c.record("PutObject", time.Now(), assert.AnError)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "s3/uploads", rec.calls[0].endpoint)
	assert.Equal(t, 200, rec.calls[0].status)
	assert.Equal(t, 500, rec.calls[1].status)
	assert.Equal(t, assert.AnError, rec.calls[1].err)

	// no recorder configured
	(&S3Client{bucket: "uploads"}).record("HeadObject", time.Now(), nil)
}

type statusError struct {
	status int
}

func (e *statusError) Error() string       { return fmt.Sprintf("api error: status %d", e.status) }
func (e *statusError) HTTPStatusCode() int { return e.status }

func TestCallStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"성공: 에러 없음", nil, 200},
		{"실패: S3 응답 상태 사용", fmt.Errorf("operation error S3: DeleteObject: %w", &statusError{status: 403}), 403},
		{"실패: 응답 없는 에러", errors.New("dial tcp: connection refused"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, callStatus(tt.err))
		})
	}
}

func TestMockS3Client(t *testing.T) {
	ctx := context.Background()
	m := NewMockS3Client()

	require.NoError(t, m.UploadFile(ctx, "uploads/a.png", strings.NewReader("png"), "image/png"))
	m.Put("other/b.png", 3, time.Now())

	objects, err := m.ListFiles(ctx, "uploads/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "uploads/a.png", objects[0].Key)
	assert.Equal(t, int64(3), objects[0].Size)

	exists, err := m.FileExists(ctx, "uploads/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, m.DeleteFile(ctx, "uploads/a.png"))
	exists, _ = m.FileExists(ctx, "uploads/a.png")
	assert.False(t, exists)
}
