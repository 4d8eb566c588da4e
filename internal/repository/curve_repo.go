package repository

import (
	"context"
	"database/sql"
	"fmt"

	"furnace_forecast/internal/models"
)

type CurveSQLite struct {
	db *sql.DB
}

func NewCurveSQLite(db *sql.DB) *CurveSQLite {
	return &CurveSQLite{db: db}
}

var _ CurveRepo = (*CurveSQLite)(nil)

// Replace swaps the stored curve for the given points in one transaction.
func (r *CurveSQLite) Replace(ctx context.Context, points []models.CurvePoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin curve replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM curve_points`); err != nil {
		return fmt.Errorf("clear curve points: %w", err)
	}
	for _, p := range points {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO curve_points (outdoor_f, rate_f_per_min) VALUES (?, ?)
			 ON CONFLICT(outdoor_f) DO UPDATE SET rate_f_per_min=excluded.rate_f_per_min`,
			p.OutdoorTemp, p.RatePerMinute,
		); err != nil {
			return fmt.Errorf("insert curve point (%v, %v): %w", p.OutdoorTemp, p.RatePerMinute, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit curve replace: %w", err)
	}
	return nil
}

// Load returns the stored curve points ordered by outdoor temperature.
// An empty table yields an empty slice, not an error.
func (r *CurveSQLite) Load(ctx context.Context) ([]models.CurvePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT outdoor_f, rate_f_per_min FROM curve_points ORDER BY outdoor_f ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CurvePoint, 0, 16)
	for rows.Next() {
		var p models.CurvePoint
		if err := rows.Scan(&p.OutdoorTemp, &p.RatePerMinute); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
