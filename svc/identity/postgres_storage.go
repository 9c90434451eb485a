package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/zkcargopass/cargopass/pkg/pg"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStorage stores users in the users table.
type PostgresStorage struct {
	db DBTX
}

// NewPostgresStorage wraps db, typically pg.OpenDB(pool).
func NewPostgresStorage(db DBTX) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const userColumns = `id, email, name, password_digest, password_salt, role, created_at, updated_at`

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStorage) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStorage) Insert(ctx context.Context, u *User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordDigest, u.PasswordSalt, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PostgresStorage) Update(ctx context.Context, u *User) error {
	query := `UPDATE users
		SET email = $2, name = $3, password_digest = $4, password_salt = $5, role = $6, updated_at = $7
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordDigest, u.PasswordSalt, u.Role, u.UpdatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return errors.Join(ErrStorageUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) scanOne(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordDigest, &u.PasswordSalt, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return &u, nil
}
