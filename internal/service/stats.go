package service

import (
	"context"
	"fmt"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
	"furnace_forecast/internal/stats"
)

// StatsService wraps the pure analyzer with the cached-baseline lifecycle:
// every refresh merges against the previous baseline and persists the merged
// result as the new one.
type StatsService struct {
	statsRepo repository.StatsRepo
}

func NewStatsService(statsRepo repository.StatsRepo) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Refresh analyzes one telemetry fetch, gap-fills from the cached baseline,
// and persists the merged result.
func (s *StatsService) Refresh(ctx context.Context, tele models.Telemetry) (models.RuntimeStats, error) {
	previous, err := s.statsRepo.Load(ctx)
	if err != nil {
		return models.RuntimeStats{}, fmt.Errorf("load stats baseline: %w", err)
	}

	merged := stats.Analyze(tele.Samples, tele.Weather, previous)

	if err := s.statsRepo.Save(ctx, merged); err != nil {
		return models.RuntimeStats{}, fmt.Errorf("save stats baseline: %w", err)
	}
	return merged, nil
}

// Latest returns the cached baseline; nil when nothing has been computed yet.
func (s *StatsService) Latest(ctx context.Context) (*models.RuntimeStats, error) {
	return s.statsRepo.Load(ctx)
}
