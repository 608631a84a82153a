package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

type customerRepository struct {
	storage *Storage
}

const customerColumns = `id, name, phone, email, address, notes, created_at`

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.CreatedAt)
	return c, err
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, r.storage.fail("list customers", err)
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, r.storage.fail("scan customer", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail("list customers", err)
	}
	return result, nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id))
	if err != nil {
		return nil, r.storage.fail("get customer", err)
	}
	return &c, nil
}

func upsertCustomer(ctx context.Context, db execer, c model.Customer) error {
	const query = `INSERT INTO customers (` + customerColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (id) DO UPDATE SET
                       name = EXCLUDED.name,
                       phone = EXCLUDED.phone,
                       email = EXCLUDED.email,
                       address = EXCLUDED.address,
                       notes = EXCLUDED.notes`
	_, err := db.Exec(ctx, query, c.ID, c.Name, c.Phone, c.Email, c.Address, c.Notes, c.CreatedAt)
	return err
}

func (r *customerRepository) Upsert(ctx context.Context, c model.Customer) error {
	if err := upsertCustomer(ctx, r.storage.pool, c); err != nil {
		return r.storage.fail("upsert customer", err)
	}
	return nil
}

func (r *customerRepository) UpsertMany(ctx context.Context, customers []model.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, c := range customers {
			if err := upsertCustomer(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.storage.fail("upsert customers", err)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return r.storage.fail("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
