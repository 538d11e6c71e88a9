package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port. It stores
// password hashes only; hashing itself belongs to the identity adapter.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persists a new account. Emails are stored lowercased so lookups are
// case-insensitive.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	email = strings.ToLower(email)

	const query = `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query, id, email, passwordHash, formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, driven.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user %q: %w", email, err)
	}

	return &model.User{ID: id, Email: email, CreatedAt: now}, nil
}

// isUniqueViolation matches the driver's extended result code rather than the
// error message, which varies between driver versions.
func isUniqueViolation(err error) bool {
	var serr *sqlitedrv.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// GetByEmail returns the account and its password hash, or (nil, "", nil)
// when the email is unknown.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, string, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`
	row := r.db.Reader.QueryRowContext(ctx, query, strings.ToLower(email))

	var u model.User
	var hash, createdAt string
	err := row.Scan(&u.ID, &u.Email, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, "", fmt.Errorf("parse created_at for user %q: %w", u.ID, err)
	}
	return &u, hash, nil
}

// GetByID returns the account, or (nil, nil) when the id is unknown.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, email, created_at FROM users WHERE id = ?`
	row := r.db.Reader.QueryRowContext(ctx, query, id)

	var u model.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", id, err)
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at for user %q: %w", u.ID, err)
	}
	return &u, nil
}
