package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
)

type ObservationLogService struct {
	obsRepo repository.ObservationRepo
}

func NewObservationLogService(obsRepo repository.ObservationRepo) *ObservationLogService {
	return &ObservationLogService{obsRepo: obsRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the range.
func normalizeAndValidateFilter(f ObservationFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	typ := strings.TrimSpace(strings.ToUpper(f.Type))
	return from, to, typ, nil
}

func (s *ObservationLogService) List(ctx context.Context, f ObservationFilter) ([]models.Observation, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.obsRepo.List(ctx, from, to, typ)
}
