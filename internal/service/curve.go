package service

import (
	"context"
	"errors"
	"fmt"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
)

var (
	errEmptyCurve        = errors.New("curve must have at least one point")
	errNegativeCurveRate = errors.New("curve rates must be non-negative")
)

// CurveService manages the learned heat-up table. Updates replace the table
// wholesale; the learning phase rebuilds it from history rather than editing
// points in place.
type CurveService struct {
	curveRepo repository.CurveRepo
	obsRepo   repository.ObservationRepo
}

func NewCurveService(curveRepo repository.CurveRepo, obsRepo repository.ObservationRepo) *CurveService {
	return &CurveService{curveRepo: curveRepo, obsRepo: obsRepo}
}

func (s *CurveService) Get(ctx context.Context) ([]models.CurvePoint, error) {
	return s.curveRepo.Load(ctx)
}

func (s *CurveService) Update(ctx context.Context, points []models.CurvePoint) error {
	if len(points) == 0 {
		return errEmptyCurve
	}
	for _, p := range points {
		if p.RatePerMinute < 0 {
			return fmt.Errorf("%w: rate %v at %v°F", errNegativeCurveRate, p.RatePerMinute, p.OutdoorTemp)
		}
	}

	if err := s.curveRepo.Replace(ctx, points); err != nil {
		return err
	}

	// best-effort audit entry; the replace already succeeded
	_ = s.obsRepo.Append(ctx, models.Observation{
		Type:        "CURVE_UPDATE",
		Description: fmt.Sprintf("heat-up curve replaced with %d points", len(points)),
	})
	return nil
}
