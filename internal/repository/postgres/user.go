package postgres

import (
	"context"

	"surfboard-marketplace-backend/internal/domain"
)

type userRepository struct {
	conn
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := r.call(ctx, "users.create", "email", u.Email)
	defer cancel()

	query := `INSERT INTO users (name, email, password_hash, role)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	return classify(err, "create user")
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	ctx, cancel := r.call(ctx, "users.get_by_id", "id", id)
	defer cancel()

	u := &domain.User{}
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, classify(err, "user")
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := r.call(ctx, "users.get_by_email")
	defer cancel()

	u := &domain.User{}
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, classify(err, "user")
	}
	return u, nil
}
