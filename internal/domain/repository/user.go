package repository

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// UserRepository describes persistence operations for staff accounts.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
	Upsert(ctx context.Context, user model.User) error
	Delete(ctx context.Context, username string) error
}
