package repository

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Snapshot is a full copy of every persisted table.
type Snapshot struct {
	Customers []model.Customer
	Orders    []model.Order
	Gluing    []model.GluingRecord
	Users     []model.User
	Telegram  model.TelegramConfig
}

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	Gluing() GluingRepository
	Users() UserRepository
	Settings() SettingsRepository
	// ReplaceAll discards every table and stores snapshot instead, atomically.
	ReplaceAll(ctx context.Context, snapshot Snapshot) error
}
