package repository

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// GluingRepository describes persistence operations with gluing records.
type GluingRepository interface {
	List(ctx context.Context) ([]model.GluingRecord, error)
	Upsert(ctx context.Context, record model.GluingRecord) error
	Delete(ctx context.Context, id string) error
}
