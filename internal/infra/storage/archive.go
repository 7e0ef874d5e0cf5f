// Package storage archives generated exports in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/export"
)

const keyPrefix = "exports"

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client putter
	bucket string
	now    func() time.Time
	logger *zap.Logger
}

// NewS3Archive loads the default AWS credential chain. An empty region
// falls back to us-east-1.
func NewS3Archive(ctx context.Context, bucket, region string, logger *zap.Logger) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 archive: bucket not configured")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 archive: load aws config: %w", err)
	}
	if region != "" {
		cfg.Region = region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	return newS3Archive(s3.NewFromConfig(cfg), bucket, logger), nil
}

func newS3Archive(client putter, bucket string, logger *zap.Logger) *S3Archive {
	return &S3Archive{
		client: client,
		bucket: bucket,
		now:    time.Now,
		logger: logger.Named("archive"),
	}
}

// Store uploads the file under exports/YYYY/MM/DD/ and returns its key.
func (a *S3Archive) Store(ctx context.Context, file *export.File) (string, error) {
	now := a.now().UTC()
	key := path.Join(keyPrefix, now.Format("2006/01/02"), uuid.NewString()+"-"+file.Name)

	detected := mimetype.Detect(file.Data)
	contentType := file.ContentType
	if contentType == "" {
		contentType = detected.String()
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(a.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(file.Data),
		ContentLength:      aws.Int64(int64(len(file.Data))),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", file.Name)),
		Metadata: map[string]string{
			"detected-type": detected.String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 archive: put %s: %w", key, err)
	}

	a.logger.Info("export archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(file.Data)),
	)
	return key, nil
}
