package repository

import (
	"context"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// SettingsRepository stores workshop wide settings.
type SettingsRepository interface {
	TelegramConfig(ctx context.Context) (model.TelegramConfig, error)
	SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error
	// LastBackup returns the zero time when no backup was ever taken.
	LastBackup(ctx context.Context) (time.Time, error)
	RecordBackup(ctx context.Context, at time.Time) error
}
