package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	appConfig "community-feed-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Media kinds, used as the first key segment
const (
	MediaKindCover     = "covers"
	MediaKindCommunity = "community"
)

// MediaStorage stores uploaded blobs and hands back a key; only the key is persisted
type MediaStorage interface {
	GenerateFileKey(kind, ownerID, fileExt string) (string, error)
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// CallRecorder receives timing of calls to the storage backend
type CallRecorder interface {
	RecordStorageCall(operation string, duration time.Duration, err error)
}

// S3Client wraps the AWS S3 client and implements MediaStorage
type S3Client struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string // set when talking to MinIO
	recorder CallRecorder
}

// NewS3Client creates a new S3 client. A configured endpoint switches to
// path-style addressing with static credentials for MinIO.
func NewS3Client(cfg *appConfig.S3Config, recorder CallRecorder) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
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

// GenerateFileKey builds {kind}/{ownerID}/{yyyy}/{mm}/{uuid}{ext}
func (c *S3Client) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	return generateFileKey(time.Now(), kind, ownerID, fileExt)
}

func generateFileKey(now time.Time, kind, ownerID, fileExt string) (string, error) {
	if kind != MediaKindCover && kind != MediaKindCommunity {
		return "", fmt.Errorf("invalid media kind: %s", kind)
	}
	if ownerID == "" {
		return "", fmt.Errorf("owner id is required")
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s%s",
		kind, ownerID, now.Format("2006"), now.Format("01"), uuid.New().String(), strings.ToLower(fileExt)), nil
}

// UploadFile uploads a file and returns its URL
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	c.record("put_object", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return c.GetFileURL(key), nil
}

// DeleteFile deletes a file
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	c.record("delete_object", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for key
func (c *S3Client) GetFileURL(key string) string {
	return fileURL(c.endpoint, c.bucket, c.region, key)
}

func fileURL(endpoint, bucket, region, key string) string {
	if key == "" {
		return ""
	}
	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(endpoint, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

func (c *S3Client) record(operation string, start time.Time, err error) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordStorageCall(operation, time.Since(start), err)
}

var _ MediaStorage = (*S3Client)(nil)
