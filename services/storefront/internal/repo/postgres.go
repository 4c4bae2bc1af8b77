package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shopfront/shared/pkg/models"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UsersPG struct{ DB DBTX }

func (r *UsersPG) Find(ctx context.Context, email string) (models.User, bool, error) {
	var u models.User
	err := r.DB.QueryRow(ctx, `
		select email, fullname, password_hash
		from users
		where email = $1
	`, email).Scan(&u.Email, &u.FullName, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("select user: %w", err)
	}
	return u, true, nil
}

// Create leans on the primary key: zero affected rows means the email was taken.
func (r *UsersPG) Create(ctx context.Context, u models.User) error {
	ct, err := r.DB.Exec(ctx, `
		insert into users(email, fullname, password_hash)
		values ($1, $2, $3)
		on conflict (email) do nothing
	`, u.Email, u.FullName, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

type OrdersPG struct{ DB DBTX }

func (r *OrdersPG) Append(ctx context.Context, o models.Order) error {
	_, err := r.DB.Exec(ctx, `
		insert into orders(order_id, email, name, phone, address, total)
		values ($1::uuid, $2, $3, $4, $5, $6)
	`, o.OrderID, o.Email, o.Name, o.Phone, o.Address, o.Total)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}
