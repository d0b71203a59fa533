package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vidtube/api/internal/core/ports"
)

// Config points the store at any S3-compatible endpoint (AWS, MinIO, ...).
type Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicBaseURL is the prefix served to clients, e.g. a CDN host.
	// Defaults to Endpoint/Bucket when empty.
	PublicBaseURL string
}

// MediaStore uploads video files, thumbnails and profile images to object
// storage and hands back public URLs.
type MediaStore struct {
	client *s3.Client
	cfg    Config
}

func NewMediaStore(ctx context.Context, cfg Config) (*MediaStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaStore{client: client, cfg: cfg}, nil
}

func (m *MediaStore) Upload(ctx context.Context, folder string, upload ports.FileUpload) (string, error) {
	key := storageKey(folder, upload.Name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(key),
		Body:   upload.Body,
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return m.publicURL(key), nil
}

func (m *MediaStore) Delete(ctx context.Context, url string) error {
	key, ok := m.keyFromURL(url)
	if !ok {
		// Not one of ours; nothing to delete.
		return nil
	}

	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// storageKey partitions objects by folder and date so bucket listings stay
// navigable.
func storageKey(folder, name string) string {
	d := time.Now()
	suffix := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		suffix = name[i:]
	}
	return fmt.Sprintf("%s/%d/%02d/%v%s", folder, d.Year(), d.Month(), uuid.New(), suffix)
}

func (m *MediaStore) publicURL(key string) string {
	base := m.cfg.PublicBaseURL
	if base == "" {
		base = strings.TrimSuffix(m.cfg.Endpoint, "/") + "/" + m.cfg.Bucket
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}

func (m *MediaStore) keyFromURL(url string) (string, bool) {
	base := m.cfg.PublicBaseURL
	if base == "" {
		base = strings.TrimSuffix(m.cfg.Endpoint, "/") + "/" + m.cfg.Bucket
	}
	rest, ok := strings.CutPrefix(url, strings.TrimSuffix(base, "/")+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
