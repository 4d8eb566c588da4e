package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"furnace_forecast/internal/models"
)

// UserSQLite stores dashboard accounts. Passwords arrive pre-hashed; the
// service layer owns bcrypt.
type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

var _ Authorization = (*UserSQLite)(nil)

// Create inserts a new account and returns its id.
func (r *UserSQLite) Create(username, hash string) (int, error) {
	res, err := r.db.Exec(`
		INSERT INTO users (username, password_hash)
		VALUES (?, ?)
	`, username, hash)
	if err != nil {
		return 0, fmt.Errorf("create user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id for %q: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no such account exists, so the
// caller can distinguish "unknown user" from a storage failure.
func (r *UserSQLite) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	return &u, nil
}
