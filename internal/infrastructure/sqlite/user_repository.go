package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios sobre SQLite.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `
		INSERT INTO users (id, username, password_hash, role, salesperson_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, u.Role, u.SalespersonID, u.CreatedAt); err != nil {
		return mapWriteError("insert user", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := sqlx.GetContext(ctx, r.q, &u,
		`SELECT id, username, password_hash, role, salesperson_id, created_at FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM users WHERE role = ?`, role); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
