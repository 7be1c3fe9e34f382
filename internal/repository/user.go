package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tlucafe/pos/internal/domain/auth"
)

const (
	findUserSQL = `SELECT user_id, username, password_hash, role, created_at
		FROM users WHERE username = $1`

	createUserSQL = `INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3) RETURNING user_id, created_at`

	listStaffSQL = `SELECT user_id, username, password_hash, role, created_at
		FROM users WHERE role = 'staff' ORDER BY user_id`
)

var _ auth.Repository = (*UserRepository)(nil)

// UserRepository implements auth.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByUsername returns the user with the given username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	rows, err := r.pool.Query(ctx, findUserSQL, username)
	if err != nil {
		return nil, fmt.Errorf("finding user %q: %w", username, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user %q: %w", username, err)
	}
	return &u, nil
}

// Create inserts a new user and assigns its ID and creation time.
func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	err := r.pool.QueryRow(ctx, createUserSQL, u.Username, u.PasswordHash, string(u.Role)).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user %q: %w", u.Username, err)
	}
	return nil
}

// ListStaff returns all staff accounts ordered by ID.
func (r *UserRepository) ListStaff(ctx context.Context) ([]auth.User, error) {
	rows, err := r.pool.Query(ctx, listStaffSQL)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	return pgx.CollectRows(rows, scanUser)
}

func scanUser(row pgx.CollectableRow) (auth.User, error) {
	var (
		u    auth.User
		role string
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	u.Role = auth.Role(role)
	return u, err
}
