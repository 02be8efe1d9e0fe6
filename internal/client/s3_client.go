package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appConfig "study-team-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3ClientInterface defines the interface for S3 operations
type S3ClientInterface interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFile(ctx context.Context, key string) error
	FileExists(ctx context.Context, key string) (bool, error)
	ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Bucket() string
}

// ObjectInfo describes one object returned by ListFiles
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// CallRecorder records the outcome of calls to external services
type CallRecorder interface {
	RecordExternalAPICall(endpoint, method string, statusCode int, duration time.Duration, err error)
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string // MinIO 사용 시 로컬 엔드포인트
	recorder CallRecorder
}

// NewS3Client creates a new S3 client. recorder may be nil.
func NewS3Client(cfg *appConfig.S3Config, recorder CallRecorder) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	var awsCfg aws.Config
	var err error

	// MinIO requires explicit credentials and a custom endpoint
	if cfg.Endpoint != "" {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for MinIO endpoint")
		}

		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		// Use AWS SDK default credential chain (IAM role on EC2, ~/.aws/credentials locally)
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		}
	})

	return &S3Client{
		client:   s3Client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
		recorder: recorder,
	}, nil
}

func (c *S3Client) Bucket() string {
	return c.bucket
}

// UploadFile uploads a file to S3
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	c.record("PutObject", start, err)
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	c.record("DeleteObject", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// FileExists reports whether key exists in the bucket
func (c *S3Client) FileExists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			c.record("HeadObject", start, nil)
			return false, nil
		}
		c.record("HeadObject", start, err)
		return false, fmt.Errorf("failed to head object: %w", err)
	}
	c.record("HeadObject", start, nil)
	return true, nil
}

// ListFiles lists every object under prefix
func (c *S3Client) ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	start := time.Now()
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})

	var objects []ObjectInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			c.record("ListObjectsV2", start, err)
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}
	}
	c.record("ListObjectsV2", start, nil)
	return objects, nil
}

func (c *S3Client) record(operation string, start time.Time, err error) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordExternalAPICall("s3/"+c.bucket, operation, callStatus(err), time.Since(start), err)
}

// callStatus returns the HTTP status of the S3 response behind err. Errors without a response
// (network, context) count as 500.
func callStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var re interface{ HTTPStatusCode() int }
	if errors.As(err, &re) && re.HTTPStatusCode() > 0 {
		return re.HTTPStatusCode()
	}
	return http.StatusInternalServerError
}
