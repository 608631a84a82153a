package postgres

import (
	"context"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT username, name, role, password FROM users ORDER BY username`)
	if err != nil {
		return nil, r.storage.fail("list users", err)
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Name, &u.Role, &u.Password); err != nil {
			return nil, r.storage.fail("scan user", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail("list users", err)
	}
	return result, nil
}

func (r *userRepository) Get(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT username, name, role, password FROM users WHERE username=$1`
	var u model.User
	if err := r.storage.pool.QueryRow(ctx, query, username).Scan(&u.Username, &u.Name, &u.Role, &u.Password); err != nil {
		return nil, r.storage.fail("get user", err)
	}
	return &u, nil
}

func upsertUser(ctx context.Context, db execer, u model.User) error {
	const query = `INSERT INTO users (username, name, role, password) VALUES ($1, $2, $3, $4)
                   ON CONFLICT (username) DO UPDATE SET
                       name = EXCLUDED.name,
                       role = EXCLUDED.role,
                       password = EXCLUDED.password`
	_, err := db.Exec(ctx, query, u.Username, u.Name, u.Role, u.Password)
	return err
}

func (r *userRepository) Upsert(ctx context.Context, u model.User) error {
	if err := upsertUser(ctx, r.storage.pool, u); err != nil {
		return r.storage.fail("upsert user", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM users WHERE username=$1`, username)
	if err != nil {
		return r.storage.fail("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
