package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	TokenSecret           string
	TokenTTL              time.Duration
	PasswordScheme        string
	TelegramAPIURL        string
	AlertWorkers          int
	AlertQueueSize        int
	DefaultProductionDays int
	BackupBucket          string
	BackupRegion          string
	BackupAccessKeyID     string
	BackupSecretAccessKey string
	CORSOrigins           []string
	Location              *time.Location
	ShutdownTimeout       time.Duration
	LogLevel              string
	BootstrapAdminUser    string
	BootstrapAdminPass    string
}

const (
	defaultRunAddress      = ":8080"
	defaultTokenSecret     = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultPasswordScheme  = "plain"
	defaultTelegramAPIURL  = "https://api.telegram.org"
	defaultAlertWorkers    = 1
	defaultAlertQueueSize  = 64
	defaultProductionDays  = 14
	defaultBackupRegion    = "ap-southeast-1"
	defaultCORSOrigins     = "*"
	defaultTimezone        = "Asia/Ho_Chi_Minh"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultBootstrapAdmin  = "admin"
	passwordSchemePlain    = "plain"
	passwordSchemeBcrypt   = "bcrypt"
	defaultDotEnvFile      = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(defaultDotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultDotEnvFile, err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		PasswordScheme:        getString(lookup, "PASSWORD_SCHEME", defaultPasswordScheme),
		TelegramAPIURL:        getString(lookup, "TELEGRAM_API_URL", defaultTelegramAPIURL),
		AlertWorkers:          getInt(lookup, "ALERT_WORKERS", defaultAlertWorkers),
		AlertQueueSize:        getInt(lookup, "ALERT_QUEUE_SIZE", defaultAlertQueueSize),
		DefaultProductionDays: getInt(lookup, "DEFAULT_PRODUCTION_DAYS", defaultProductionDays),
		BackupBucket:          getString(lookup, "BACKUP_BUCKET", ""),
		BackupRegion:          getString(lookup, "AWS_REGION", defaultBackupRegion),
		BackupAccessKeyID:     getString(lookup, "AWS_ACCESS_KEY_ID", ""),
		BackupSecretAccessKey: getString(lookup, "AWS_SECRET_ACCESS_KEY", ""),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
		BootstrapAdminUser:    getString(lookup, "BOOTSTRAP_ADMIN_USER", defaultBootstrapAdmin),
		BootstrapAdminPass:    getString(lookup, "BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	fset := flag.NewFlagSet("workshop", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = getString(lookup, "CORS_ORIGINS", defaultCORSOrigins)
		timezone           = getString(lookup, "WORKSHOP_TZ", defaultTimezone)
	)

	fset.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fset.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fset.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing session tokens")
	fset.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Session token lifetime")
	fset.StringVar(&cfg.PasswordScheme, "password-scheme", cfg.PasswordScheme, "Stored password scheme: plain or bcrypt")
	fset.StringVar(&cfg.TelegramAPIURL, "telegram-api", cfg.TelegramAPIURL, "Telegram Bot API base URL")
	fset.IntVar(&cfg.AlertWorkers, "alert-workers", cfg.AlertWorkers, "Number of concurrent alert senders")
	fset.IntVar(&cfg.AlertQueueSize, "alert-queue", cfg.AlertQueueSize, "Pending alert queue capacity")
	fset.IntVar(&cfg.DefaultProductionDays, "production-days", cfg.DefaultProductionDays, "Production days used when an order omits them")
	fset.StringVar(&cfg.BackupBucket, "backup-bucket", cfg.BackupBucket, "S3 bucket for workbook backups")
	fset.StringVar(&cfg.BackupRegion, "backup-region", cfg.BackupRegion, "S3 region for workbook backups")
	fset.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated allowed CORS origins")
	fset.StringVar(&timezone, "timezone", timezone, "Workshop calendar time zone")
	fset.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fset.StringVar(&cfg.BootstrapAdminUser, "admin-user", cfg.BootstrapAdminUser, "Admin account created when no users exist")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSOrigins = splitList(corsOrigins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{defaultCORSOrigins}
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.AlertWorkers <= 0 {
		cfg.AlertWorkers = defaultAlertWorkers
	}

	if cfg.AlertQueueSize <= 0 {
		cfg.AlertQueueSize = defaultAlertQueueSize
	}

	if cfg.DefaultProductionDays <= 0 {
		cfg.DefaultProductionDays = defaultProductionDays
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.PasswordScheme = strings.ToLower(strings.TrimSpace(cfg.PasswordScheme))
	switch cfg.PasswordScheme {
	case passwordSchemePlain, passwordSchemeBcrypt:
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", cfg.PasswordScheme)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// BackupArchiveEnabled reports whether workbook backups should be uploaded.
func (c *Config) BackupArchiveEnabled() bool {
	return c.BackupBucket != ""
}

// HashedPasswords reports whether stored passwords are bcrypt hashes.
func (c *Config) HashedPasswords() bool {
	return c.PasswordScheme == passwordSchemeBcrypt
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
