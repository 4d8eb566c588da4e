package service

import (
	"context"
	"fmt"
	"sync"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
	"furnace_forecast/internal/telemetry"
	"furnace_forecast/internal/thermal"
)

// TelemetryCache holds the most recent fetch so request handlers never block
// on the vendor API. The poller is the only writer.
type TelemetryCache struct {
	mu   sync.RWMutex
	tele *models.Telemetry
}

func (c *TelemetryCache) Set(t models.Telemetry) {
	c.mu.Lock()
	c.tele = &t
	c.mu.Unlock()
}

func (c *TelemetryCache) Latest() (models.Telemetry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tele == nil {
		return models.Telemetry{}, false
	}
	return *c.tele, true
}

type PredictionService struct {
	engine    *thermal.Engine
	curveRepo repository.CurveRepo
	source    telemetry.Source
	cache     *TelemetryCache
}

func NewPredictionService(engine *thermal.Engine, curveRepo repository.CurveRepo, source telemetry.Source, cache *TelemetryCache) *PredictionService {
	return &PredictionService{engine: engine, curveRepo: curveRepo, source: source, cache: cache}
}

// Current predicts from the latest cached telemetry, fetching once when the
// cache is still cold (first request before the poller's first pass).
func (s *PredictionService) Current(ctx context.Context) (models.PredictionResult, error) {
	tele, err := s.telemetry(ctx)
	if err != nil {
		return models.PredictionResult{}, err
	}
	curve, err := s.loadCurve(ctx)
	if err != nil {
		return models.PredictionResult{}, err
	}
	return s.engine.Predict(tele.Snapshot, curve), nil
}

// Snapshot returns the latest thermostat reading.
func (s *PredictionService) Snapshot(ctx context.Context) (models.ThermostatSnapshot, error) {
	tele, err := s.telemetry(ctx)
	if err != nil {
		return models.ThermostatSnapshot{}, err
	}
	return tele.Snapshot, nil
}

// PredictFrom runs the engine against explicit telemetry; used by the poller
// so metrics reflect the fetch that was just cached.
func (s *PredictionService) PredictFrom(ctx context.Context, tele models.Telemetry) (models.PredictionResult, error) {
	curve, err := s.loadCurve(ctx)
	if err != nil {
		return models.PredictionResult{}, err
	}
	return s.engine.Predict(tele.Snapshot, curve), nil
}

func (s *PredictionService) telemetry(ctx context.Context) (models.Telemetry, error) {
	if tele, ok := s.cache.Latest(); ok {
		return tele, nil
	}
	tele, err := s.source.Fetch(ctx)
	if err != nil {
		return models.Telemetry{}, fmt.Errorf("fetch telemetry: %w", err)
	}
	s.cache.Set(tele)
	return tele, nil
}

func (s *PredictionService) loadCurve(ctx context.Context) (thermal.HeatUpCurve, error) {
	points, err := s.curveRepo.Load(ctx)
	if err != nil {
		return thermal.HeatUpCurve{}, fmt.Errorf("load heat-up curve: %w", err)
	}
	return thermal.NewHeatUpCurve(points, s.engine.FallbackRate()), nil
}
