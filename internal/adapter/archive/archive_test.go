package archive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/config"
)

type fakeObjects struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestS3ArchiveStore(t *testing.T) {
	objects := &fakeObjects{}
	a := NewS3Archive(objects, "workshop-backups", testLogger())
	a.now = func() time.Time { return time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC) }

	key, err := a.Store(context.Background(), "QuanLyXuong_Backup_2024-06-03.xlsx", []byte("PK"))
	require.NoError(t, err)
	assert.True(t, a.Enabled())
	assert.Equal(t, "backups/2024/06/QuanLyXuong_Backup_2024-06-03.xlsx", key)
	assert.Equal(t, "workshop-backups", aws.ToString(objects.input.Bucket))
	assert.Equal(t, key, aws.ToString(objects.input.Key))
	assert.Equal(t, xlsxContentType, aws.ToString(objects.input.ContentType))
	assert.Equal(t, []byte("PK"), objects.body)
}

func TestS3ArchiveStoreError(t *testing.T) {
	a := NewS3Archive(&fakeObjects{err: errors.New("access denied")}, "b", testLogger())
	_, err := a.Store(context.Background(), "x.xlsx", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "access denied"))
}

func TestDisabledArchive(t *testing.T) {
	var a Archive = Disabled{}
	assert.False(t, a.Enabled())
	_, err := a.Store(context.Background(), "x.xlsx", nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewArchive(t *testing.T) {
	a, err := newArchive(archiveParams{Config: &config.Config{}, Logger: testLogger()})
	require.NoError(t, err)
	assert.IsType(t, Disabled{}, a)

	a, err = newArchive(archiveParams{
		Config: &config.Config{BackupBucket: "workshop-backups", BackupRegion: "ap-southeast-1", BackupAccessKeyID: "AKIA", BackupSecretAccessKey: "secret"},
		Logger: testLogger(),
	})
	require.NoError(t, err)
	s3Archive, ok := a.(*S3Archive)
	require.True(t, ok)
	assert.Equal(t, "workshop-backups", s3Archive.bucket)
}
