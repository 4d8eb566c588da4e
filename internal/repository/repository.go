package repository

import (
	"context"
	"database/sql"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// StatsRepo stores the single cached RuntimeStats baseline (row id=1).
type StatsRepo interface {
	Save(ctx context.Context, s models.RuntimeStats) error
	Load(ctx context.Context) (*models.RuntimeStats, error)
}

// CurveRepo stores the learned heat-up curve. The table is replaced
// wholesale on relearn, never edited point by point.
type CurveRepo interface {
	Replace(ctx context.Context, points []models.CurvePoint) error
	Load(ctx context.Context) ([]models.CurvePoint, error)
}

// TokenRepo caches the vendor OAuth credential pair between polls.
type TokenRepo interface {
	Save(ctx context.Context, t models.OAuthToken) error
	Load(ctx context.Context) (models.OAuthToken, error)
}

// ObservationRepo is the append-only poll log with filtered access.
type ObservationRepo interface {
	Append(ctx context.Context, o models.Observation) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Observation, error)
}

type Repository struct {
	Stats        StatsRepo
	Curve        CurveRepo
	Token        TokenRepo
	Observations ObservationRepo
	Auth         Authorization
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Stats:        NewStatsSQLite(conn),
		Curve:        NewCurveSQLite(conn),
		Token:        NewTokenSQLite(conn),
		Observations: NewObservationSQLite(conn),
		Auth:         NewUserSQLite(conn),
	}
}

// InitDB opens the cache file and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
