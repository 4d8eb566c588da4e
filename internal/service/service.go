package service

import (
	"context"
	"time"

	"furnace_forecast/internal/logger"
	"furnace_forecast/internal/metrics"
	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
	"furnace_forecast/internal/telemetry"
	"furnace_forecast/internal/thermal"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Prediction exposes the live forecast built from the latest telemetry.
type Prediction interface {
	Current(ctx context.Context) (models.PredictionResult, error)
	Snapshot(ctx context.Context) (models.ThermostatSnapshot, error)
}

// Curve exposes the learned heat-up curve table.
type Curve interface {
	Get(ctx context.Context) ([]models.CurvePoint, error)
	Update(ctx context.Context, points []models.CurvePoint) error
}

// Stats exposes the 24 h runtime aggregates and their cached baseline.
type Stats interface {
	Refresh(ctx context.Context, tele models.Telemetry) (models.RuntimeStats, error)
	Latest(ctx context.Context) (*models.RuntimeStats, error)
}

// ObservationLog exposes the append-only poll log with filtering access.
type ObservationLog interface {
	List(ctx context.Context, f ObservationFilter) ([]models.Observation, error)
}

// Poller runs the background telemetry loop. Stop via context cancellation
// in main() for graceful shutdown.
type Poller interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Prediction
	Curve
	Stats
	ObservationLog
	Poller
	Authorization
}

// Deps carries everything the service layer is built from.
type Deps struct {
	Repos      *repository.Repository
	Source     telemetry.Source
	Fallback   telemetry.Source // safe data when the vendor poll fails
	Engine     *thermal.Engine
	Metrics    *metrics.Metrics
	Log        *logger.Logger
	SigningKey string
}

func NewService(d Deps) *Service {
	cache := &TelemetryCache{}
	prediction := NewPredictionService(d.Engine, d.Repos.Curve, d.Source, cache)
	statsSvc := NewStatsService(d.Repos.Stats)

	return &Service{
		Prediction:     prediction,
		Curve:          NewCurveService(d.Repos.Curve, d.Repos.Observations),
		Stats:          statsSvc,
		ObservationLog: NewObservationLogService(d.Repos.Observations),
		Poller: NewPollerService(PollerDeps{
			Source:       d.Source,
			Fallback:     d.Fallback,
			Cache:        cache,
			Prediction:   prediction,
			Stats:        statsSvc,
			Observations: d.Repos.Observations,
			Metrics:      d.Metrics,
			Log:          d.Log,
		}),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}
}
