package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shakthishetty/Interview-Prep-Ai/pkg/model"
)

var ErrDuplicateEmail = errors.New("email already exists")
var ErrNotFound = errors.New("not found")

// CreateUser inserts a new user and returns the generated id. New users have
// not paid yet.
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	id := uuid.New().String()
	const q = `
INSERT INTO users (user_id, name, email, password_hash, has_paid, created_at, updated_at)
VALUES ($1, $2, $3, $4, FALSE, now(), now())
`
	_, err := r.db.Exec(ctx, q, id, name, email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, has_paid, stripe_customer_id, payment_date, created_at, updated_at
FROM users
WHERE email = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, email)
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.HasPaid,
		&u.StripeCustomerID, &u.PaymentDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user by email: %w", err)
	}
	return &u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, has_paid, stripe_customer_id, payment_date, created_at, updated_at
FROM users
WHERE user_id = $1
`
	var u model.User
	row := r.db.QueryRow(ctx, q, id)
	if err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.HasPaid,
		&u.StripeCustomerID, &u.PaymentDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user by id: %w", err)
	}
	return &u, nil
}

// MarkUserPaid flips the lifetime-access flag after a completed checkout.
func (r *Repository) MarkUserPaid(ctx context.Context, userID, stripeCustomerID string, paidAt time.Time) error {
	const q = `
UPDATE users
SET has_paid = TRUE, stripe_customer_id = $2, payment_date = $3, updated_at = now()
WHERE user_id = $1
`
	tag, err := r.db.Exec(ctx, q, userID, stripeCustomerID, paidAt)
	if err != nil {
		return fmt.Errorf("mark user paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
