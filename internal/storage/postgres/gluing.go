package postgres

import (
	"context"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

type gluingRepository struct {
	storage *Storage
}

const gluingColumns = `id, order_id, product_name, gluing_type, quantity, fail_quantity, date,
                       worker_name, notes, temperature, pressure, duration`

func (r *gluingRepository) List(ctx context.Context) ([]model.GluingRecord, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+gluingColumns+` FROM gluing_records ORDER BY date DESC`)
	if err != nil {
		return nil, r.storage.fail("list gluing records", err)
	}
	defer rows.Close()

	var result []model.GluingRecord
	for rows.Next() {
		var g model.GluingRecord
		if err := rows.Scan(&g.ID, &g.OrderID, &g.ProductName, &g.GluingType, &g.Quantity, &g.FailQuantity, &g.Date,
			&g.WorkerName, &g.Notes, &g.Temperature, &g.Pressure, &g.Duration); err != nil {
			return nil, r.storage.fail("scan gluing record", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail("list gluing records", err)
	}
	return result, nil
}

func upsertGluing(ctx context.Context, db execer, g model.GluingRecord) error {
	const query = `INSERT INTO gluing_records (` + gluingColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   ON CONFLICT (id) DO UPDATE SET
                       order_id = EXCLUDED.order_id,
                       product_name = EXCLUDED.product_name,
                       gluing_type = EXCLUDED.gluing_type,
                       quantity = EXCLUDED.quantity,
                       fail_quantity = EXCLUDED.fail_quantity,
                       date = EXCLUDED.date,
                       worker_name = EXCLUDED.worker_name,
                       notes = EXCLUDED.notes,
                       temperature = EXCLUDED.temperature,
                       pressure = EXCLUDED.pressure,
                       duration = EXCLUDED.duration`
	_, err := db.Exec(ctx, query, g.ID, g.OrderID, g.ProductName, g.GluingType, g.Quantity, g.FailQuantity, g.Date,
		g.WorkerName, g.Notes, g.Temperature, g.Pressure, g.Duration)
	return err
}

func (r *gluingRepository) Upsert(ctx context.Context, g model.GluingRecord) error {
	if err := upsertGluing(ctx, r.storage.pool, g); err != nil {
		return r.storage.fail("upsert gluing record", err)
	}
	return nil
}

func (r *gluingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM gluing_records WHERE id=$1`, id)
	if err != nil {
		return r.storage.fail("delete gluing record", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
