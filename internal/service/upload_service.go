package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-team-api/internal/dto"
	"study-team-api/internal/response"
	"study-team-api/internal/storage"
)

var allowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// URLResolver maps a stored file name to the URL posts embed
type URLResolver interface {
	URLFor(name string) string
}

// UploadService defines the interface for image uploads
type UploadService interface {
	UploadImage(ctx context.Context, userID uuid.UUID, filename string, size int64, r io.Reader) (*dto.UploadImageResponse, error)
}

type uploadServiceImpl struct {
	store   storage.Store
	urls    URLResolver
	maxSize int64
	now     func() time.Time
	logger  *zap.Logger
}

// NewUploadService creates a new instance of UploadService. maxSize <= 0 disables the size check.
func NewUploadService(store storage.Store, urls URLResolver, maxSize int64, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{
		store:   store,
		urls:    urls,
		maxSize: maxSize,
		now:     time.Now,
		logger:  logger,
	}
}

// UploadImage stores an image under a fresh name and returns the URL to embed in post content
func (s *uploadServiceImpl) UploadImage(ctx context.Context, userID uuid.UUID, filename string, size int64, r io.Reader) (*dto.UploadImageResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return nil, response.NewValidationError("Unsupported image type", "allowed: png, jpg, jpeg, gif, webp")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, response.NewValidationError("Image is too large", fmt.Sprintf("max %d bytes", s.maxSize))
	}

	name := fmt.Sprintf("%s_%d%s", uuid.New().String(), s.now().Unix(), ext)
	// the declared size can lie, so the body is checked as it is stored
	if err := s.store.Save(ctx, name, &limitChecker{r: r, max: s.maxSize}, contentType); err != nil {
		if errors.Is(err, errImageTooLarge) {
			return nil, response.NewValidationError("Image is too large", fmt.Sprintf("max %d bytes", s.maxSize))
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store image", err.Error())
	}

	s.logger.Info("image uploaded",
		zap.String("user_id", userID.String()),
		zap.String("name", name),
		zap.Int64("size", size),
	)
	return &dto.UploadImageResponse{URL: s.urls.URLFor(name)}, nil
}

var errImageTooLarge = errors.New("image exceeds size limit")

// limitChecker fails the read once more than max bytes have been read
type limitChecker struct {
	r    io.Reader
	max  int64
	read int64
}

func (l *limitChecker) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.max > 0 && l.read > l.max {
		return n, errImageTooLarge
	}
	return n, err
}
