package repo

import (
	"context"
	"fmt"

	dom "github.com/Munnjee/Comp2537-A01/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence. Lookups return every matching row;
// the schema enforces no uniqueness on name or email, so zero and many are
// both legal result shapes that callers must handle.
type UserRepo interface {
	Insert(ctx context.Context, name, email, passwordHash string) (dom.User, error)
	FindByEmail(ctx context.Context, email string) ([]dom.User, error)
	FindByName(ctx context.Context, name string) ([]dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Insert stores a new user and returns it.
func (r *PGUserRepo) Insert(ctx context.Context, name, email, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, name, email, passwordHash).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return dom.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindByEmail returns all users with the given email.
func (r *PGUserRepo) FindByEmail(ctx context.Context, email string) ([]dom.User, error) {
	return r.find(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email)
}

// FindByName returns all users with the given name.
func (r *PGUserRepo) FindByName(ctx context.Context, name string) ([]dom.User, error) {
	return r.find(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE name = $1`,
		name)
}

func (r *PGUserRepo) find(ctx context.Context, query, arg string) ([]dom.User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	var out []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return out, nil
}
