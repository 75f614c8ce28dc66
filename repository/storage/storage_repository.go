package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/souqhub/marketplace/cmd/config"
)

// StorageRepository stores listing images and profile pictures in an
// S3-compatible bucket and hands out the public URL for each object.
type StorageRepository interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

type s3Repo struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewStorageRepository(cfg *config.Config) (StorageRepository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3.Bucket, cfg.S3.Region)
	}

	return &s3Repo{
		client:  client,
		bucket:  cfg.S3.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// objectKey partitions uploads by day so the bucket stays browsable.
func objectKey(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("listings/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(fileName))
}

func (r *s3Repo) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	key := objectKey(fileName)

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return r.baseURL + "/" + key, nil
}

func (r *s3Repo) DeleteByURL(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, r.baseURL+"/")
	if key == url {
		return fmt.Errorf("url %q does not belong to bucket %q", url, r.bucket)
	}

	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return err
}
