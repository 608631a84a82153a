package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

type settingsRepository struct {
	storage *Storage
}

const (
	telegramSettingKey   = "telegram"
	lastBackupSettingKey = "last_backup"
)

type telegramDoc struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

type lastBackupDoc struct {
	At time.Time `json:"at"`
}

// readSetting decodes the JSON value stored under key. found is false when the key is absent.
func (r *settingsRepository) readSetting(ctx context.Context, key string, dst any) (found bool, err error) {
	var raw []byte
	if err := r.storage.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, r.storage.fail("get setting "+key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, r.storage.fail("decode setting "+key, err)
	}
	return true, nil
}

func writeSetting(ctx context.Context, db execer, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const query = `INSERT INTO settings (key, value) VALUES ($1, $2)
                   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err = db.Exec(ctx, query, key, raw)
	return err
}

func (r *settingsRepository) TelegramConfig(ctx context.Context) (model.TelegramConfig, error) {
	var doc telegramDoc
	if _, err := r.readSetting(ctx, telegramSettingKey, &doc); err != nil {
		return model.TelegramConfig{}, err
	}
	return model.TelegramConfig(doc), nil
}

func saveTelegramConfig(ctx context.Context, db execer, cfg model.TelegramConfig) error {
	return writeSetting(ctx, db, telegramSettingKey, telegramDoc(cfg))
}

func (r *settingsRepository) SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error {
	if err := saveTelegramConfig(ctx, r.storage.pool, cfg); err != nil {
		return r.storage.fail("save telegram config", err)
	}
	return nil
}

func (r *settingsRepository) LastBackup(ctx context.Context) (time.Time, error) {
	var doc lastBackupDoc
	if _, err := r.readSetting(ctx, lastBackupSettingKey, &doc); err != nil {
		return time.Time{}, err
	}
	return doc.At, nil
}

func (r *settingsRepository) RecordBackup(ctx context.Context, at time.Time) error {
	if err := writeSetting(ctx, r.storage.pool, lastBackupSettingKey, lastBackupDoc{At: at}); err != nil {
		return r.storage.fail("record backup", err)
	}
	return nil
}
