package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"confsite/internal/dbx"
	"confsite/internal/domain"
)

type userRepository struct {
	DB      dbx.DBTX
	dialect Dialect
}

// NewUserRepository returns a domain.UserRepository bound to db, which may be a *sql.DB or a *sql.Tx.
func NewUserRepository(db dbx.DBTX, dialect Dialect) domain.UserRepository {
	return &userRepository{DB: db, dialect: dialect}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := rebind(r.dialect, `
		INSERT INTO users (username, password_hash, salt)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Salt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := rebind(r.dialect, `
		SELECT id, username, password_hash, salt
		FROM users
		WHERE username = ?
	`)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := rebind(r.dialect, `
		SELECT id, username, password_hash, salt
		FROM users
		WHERE id = ?
	`)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Salt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
