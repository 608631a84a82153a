package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned by the no-op archive used when no bucket is configured.
var ErrDisabled = errors.New("backup archive disabled")

const (
	keyPrefix       = "backups"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Archive keeps copies of backup workbooks off-site.
type Archive interface {
	Enabled() bool
	// Store uploads a workbook and returns its object key.
	Store(ctx context.Context, name string, content []byte) (string, error)
}

// objectAPI is the subset of *s3.Client used by S3Archive.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive stores workbooks under backups/ in one bucket.
type S3Archive struct {
	client objectAPI
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

// NewS3Archive wraps an S3 client for bucket.
func NewS3Archive(client objectAPI, bucket string, logger *slog.Logger) *S3Archive {
	return &S3Archive{client: client, bucket: bucket, logger: logger, now: time.Now}
}

func (a *S3Archive) Enabled() bool { return true }

func (a *S3Archive) Store(ctx context.Context, name string, content []byte) (string, error) {
	key := path.Join(keyPrefix, a.now().UTC().Format("2006/01"), name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(xlsxContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload backup to s3: %w", err)
	}
	a.logger.Info("backup archived", slog.String("bucket", a.bucket), slog.String("key", key), slog.Int("bytes", len(content)))
	return key, nil
}

// Disabled is the archive used when BACKUP_BUCKET is empty.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Store(context.Context, string, []byte) (string, error) { return "", ErrDisabled }
