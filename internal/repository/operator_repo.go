package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"driver_logsheet/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	insertOperatorSQL = `INSERT INTO operators (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectOperatorSQL = `SELECT id, username, password_hash, created_at, last_sign_in_at FROM operators WHERE username = ?`
	touchOperatorSQL  = `UPDATE operators SET last_sign_in_at = ? WHERE id = ?`
)

// OperatorSQLite stores the accounts allowed to ingest schedules and request renders.
type OperatorSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite {
	return &OperatorSQLite{db: db, now: time.Now}
}

var _ Authorization = (*OperatorSQLite)(nil)

// Create returns ErrDuplicate when the username is already registered.
func (r *OperatorSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, username, passwordHash, r.stamp())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("operator %q: %w", username, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert operator %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("operator %q id: %w", username, err)
	}
	return int(id), nil
}

func (r *OperatorSQLite) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var (
		u        models.User
		lastSeen sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectOperatorSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &lastSeen)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, fmt.Errorf("operator %q: %w", username, ErrNotFound)
	case err != nil:
		return models.User{}, fmt.Errorf("select operator %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	if lastSeen.Valid {
		t := lastSeen.Time.UTC()
		u.LastSignInAt = &t
	}
	return u, nil
}

// RecordSignIn stamps the operator's last successful sign-in.
func (r *OperatorSQLite) RecordSignIn(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, touchOperatorSQL, r.stamp(), id)
	if err != nil {
		return fmt.Errorf("record sign-in for operator %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("operator %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *OperatorSQLite) stamp() string {
	return r.now().UTC().Format(sqliteTimeLayout)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// non-extended result codes only carry the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
