package archive

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
)

// Module provides the backup archive.
var Module = fx.Provide(newArchive)

type archiveParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// loadAWSConfig is swapped in tests.
var loadAWSConfig = awsconfig.LoadDefaultConfig

func newArchive(p archiveParams) (Archive, error) {
	if !p.Config.BackupArchiveEnabled() {
		p.Logger.Info("backup archive disabled, set BACKUP_BUCKET to enable")
		return Disabled{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(p.Config.BackupRegion)}
	if p.Config.BackupAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.Config.BackupAccessKeyID,
			p.Config.BackupSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := loadAWSConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Archive(s3.NewFromConfig(awsCfg), p.Config.BackupBucket, p.Logger), nil
}
