package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	appconfig "gymcore-backend-go/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaStore persists uploaded media on S3-compatible object storage. The
// object key doubles as the provider reference stored on the database row.
type MediaStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewMediaStore(ctx context.Context, cfg appconfig.Config) (*MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.MediaRegion))
	if err != nil {
		return nil, WrapError(err, "media store config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.MediaEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
			o.UsePathStyle = true
		}
	})
	baseURL := cfg.MediaPublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.MediaBucket, cfg.MediaRegion)
	}
	return &MediaStore{
		client:  client,
		bucket:  cfg.MediaBucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the payload under pathHint and returns the public URL and the
// provider reference needed to delete it later.
func (m *MediaStore) Upload(ctx context.Context, payload []byte, pathHint, contentType string) (string, string, error) {
	key := strings.TrimLeft(pathHint, "/")
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", ErrUpstream("Media upload failed")
	}
	return m.baseURL + "/" + key, key, nil
}

// Delete removes a remote object. Callers treat failures as degraded, not
// fatal: the database row wins and the orphaned object is only logged.
func (m *MediaStore) Delete(ctx context.Context, providerRef string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(providerRef),
	})
	if err != nil {
		return ErrUpstream("Media delete failed")
	}
	return nil
}
