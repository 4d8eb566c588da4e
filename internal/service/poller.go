package service

import (
	"context"
	"time"

	"furnace_forecast/internal/logger"
	"furnace_forecast/internal/metrics"
	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
	"furnace_forecast/internal/telemetry"
)

// PollerService drives the whole pipeline: fetch telemetry, cache it for the
// request handlers, refresh the runtime stats, publish metrics, and append to
// the poll log. The core stays pure; this is the only place that sequences
// the I/O around it.
type PollerService struct {
	source       telemetry.Source
	fallback     telemetry.Source
	cache        *TelemetryCache
	prediction   *PredictionService
	stats        Stats
	observations repository.ObservationRepo
	metrics      *metrics.Metrics
	log          *logger.Logger
}

type PollerDeps struct {
	Source       telemetry.Source
	Fallback     telemetry.Source
	Cache        *TelemetryCache
	Prediction   *PredictionService
	Stats        Stats
	Observations repository.ObservationRepo
	Metrics      *metrics.Metrics
	Log          *logger.Logger
}

func NewPollerService(d PollerDeps) *PollerService {
	return &PollerService{
		source:       d.Source,
		fallback:     d.Fallback,
		cache:        d.Cache,
		prediction:   d.Prediction,
		stats:        d.Stats,
		observations: d.Observations,
		metrics:      d.Metrics,
		log:          d.Log,
	}
}

// Run polls immediately and then on every tick until ctx is canceled.
func (s *PollerService) Run(ctx context.Context, tick time.Duration) {
	s.pollOnce(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.pollOnce(ctx)
		}
	}
}

func (s *PollerService) pollOnce(ctx context.Context) {
	tele, err := s.source.Fetch(ctx)
	if err != nil {
		// vendor failures never reach the core: degrade to the mock source
		if s.metrics != nil {
			s.metrics.PollError()
		}
		if s.log != nil {
			s.log.Errorw("telemetry_poll_failed", "err", err)
		}
		_ = s.observations.Append(ctx, models.Observation{
			Type:        "POLL_ERROR",
			Description: "vendor poll failed; using mock data",
			Metadata:    map[string]any{"error": err.Error()},
		})

		tele, err = s.fallback.Fetch(ctx)
		if err != nil {
			// the mock source is total; reaching this means a programming error
			if s.log != nil {
				s.log.Errorw("fallback_telemetry_failed", "err", err)
			}
			return
		}
	}

	s.cache.Set(tele)

	merged, statsErr := s.stats.Refresh(ctx, tele)
	if statsErr != nil && s.log != nil {
		s.log.Errorw("stats_refresh_failed", "err", statsErr)
	}

	pred, err := s.prediction.PredictFrom(ctx, tele)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("prediction_failed", "err", err)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.Observe(tele.Snapshot, pred)
	}

	meta := map[string]any{
		"status":    string(pred.Status),
		"indoor_f":  tele.Snapshot.IndoorTemp,
		"outdoor_f": tele.Snapshot.OutdoorTemp,
	}
	// stats keys only describe a baseline that was actually persisted
	if statsErr == nil {
		meta["heat_min_24h"] = merged.TotalHeatingMinutes
		meta["cycle_count"] = merged.CycleCount
		meta["equipment"] = merged.EquipmentStatus
	}
	_ = s.observations.Append(ctx, models.Observation{
		Type:        "POLL",
		Description: "telemetry fetched",
		Metadata:    meta,
	})
}
