package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"furnace_forecast/internal/models"
)

type StatsSQLite struct {
	db *sql.DB
}

func NewStatsSQLite(db *sql.DB) *StatsSQLite {
	return &StatsSQLite{db: db}
}

var _ StatsRepo = (*StatsSQLite)(nil)

const (
	statsRowID = 1

	upsertStatsSQL = `
		INSERT INTO runtime_stats (id, heat_minutes, cool_minutes, cycle_count, current_cycle_minutes,
			avg_outdoor_f, forecast_outdoor_f, projected_minutes, retention_minutes,
			loss_f_per_hour, equipment, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			heat_minutes=excluded.heat_minutes,
			cool_minutes=excluded.cool_minutes,
			cycle_count=excluded.cycle_count,
			current_cycle_minutes=excluded.current_cycle_minutes,
			avg_outdoor_f=excluded.avg_outdoor_f,
			forecast_outdoor_f=excluded.forecast_outdoor_f,
			projected_minutes=excluded.projected_minutes,
			retention_minutes=excluded.retention_minutes,
			loss_f_per_hour=excluded.loss_f_per_hour,
			equipment=excluded.equipment,
			updated_at=excluded.updated_at
	`

	selectStatsSQL = `
		SELECT heat_minutes, cool_minutes, cycle_count, current_cycle_minutes,
			avg_outdoor_f, forecast_outdoor_f, projected_minutes, retention_minutes,
			loss_f_per_hour, equipment, updated_at
		FROM runtime_stats WHERE id=?
	`
)

// Save upserts the single baseline row (id always 1).
func (r *StatsSQLite) Save(ctx context.Context, s models.RuntimeStats) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStatsSQL,
		statsRowID,
		s.TotalHeatingMinutes,
		s.TotalCoolingMinutes,
		s.CycleCount,
		s.CurrentCycleMinutes,
		s.AvgOutdoorTemp,
		s.ForecastOutdoorTemp,
		s.ProjectedRuntimeMinutes,
		s.AvgHeatRetentionMinutes,
		s.HeatLossPerHour,
		s.EquipmentStatus,
		ts,
	)
	return err
}

// Load fetches the baseline. Returns (nil, nil) when no baseline is cached yet.
func (r *StatsSQLite) Load(ctx context.Context) (*models.RuntimeStats, error) {
	row := r.db.QueryRowContext(ctx, selectStatsSQL, statsRowID)

	var s models.RuntimeStats
	if err := row.Scan(
		&s.TotalHeatingMinutes,
		&s.TotalCoolingMinutes,
		&s.CycleCount,
		&s.CurrentCycleMinutes,
		&s.AvgOutdoorTemp,
		&s.ForecastOutdoorTemp,
		&s.ProjectedRuntimeMinutes,
		&s.AvgHeatRetentionMinutes,
		&s.HeatLossPerHour,
		&s.EquipmentStatus,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}
