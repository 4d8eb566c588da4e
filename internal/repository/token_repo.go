package repository

import (
	"context"
	"database/sql"
	"errors"

	"furnace_forecast/internal/models"
)

type TokenSQLite struct {
	db *sql.DB
}

func NewTokenSQLite(db *sql.DB) *TokenSQLite {
	return &TokenSQLite{db: db}
}

var _ TokenRepo = (*TokenSQLite)(nil)

const tokenRowID = 1

// Save upserts the single credential row.
func (r *TokenSQLite) Save(ctx context.Context, t models.OAuthToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO oauth_token (id, access_token, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token=excluded.access_token,
			refresh_token=excluded.refresh_token,
			expires_at=excluded.expires_at
	`, tokenRowID, t.AccessToken, t.RefreshToken, t.ExpiresAt.UTC())
	return err
}

// Load returns the cached token; a zero token when none is stored.
func (r *TokenSQLite) Load(ctx context.Context) (models.OAuthToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, expires_at FROM oauth_token WHERE id=?`, tokenRowID)

	var t models.OAuthToken
	if err := row.Scan(&t.AccessToken, &t.RefreshToken, &t.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OAuthToken{}, nil
		}
		return models.OAuthToken{}, err
	}
	t.ExpiresAt = t.ExpiresAt.UTC()
	return t, nil
}
