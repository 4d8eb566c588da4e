package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"furnace_forecast/internal/models"
)

type fakeStatsRepo struct {
	baseline *models.RuntimeStats
	loadErr  error
	saveErr  error
	saved    []models.RuntimeStats
}

func (f *fakeStatsRepo) Save(_ context.Context, s models.RuntimeStats) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	f.baseline = &s
	return nil
}

func (f *fakeStatsRepo) Load(_ context.Context) (*models.RuntimeStats, error) {
	return f.baseline, f.loadErr
}

func telemetryWithSamples(heatSecs ...int) models.Telemetry {
	tele := testTelemetry()
	for _, s := range heatSecs {
		tele.Samples = append(tele.Samples, models.IntervalSample{HeatingSeconds: s, IndoorTemp: 70})
	}
	return tele
}

func TestStatsService_Refresh_PersistsMergedBaseline(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewStatsService(repo)

	merged, err := svc.Refresh(context.Background(), telemetryWithSamples(0, 300, 300))
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if merged.TotalHeatingMinutes != 10 {
		t.Fatalf("total heating = %d, want 10", merged.TotalHeatingMinutes)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected the merged result persisted, got %d saves", len(repo.saved))
	}
}

func TestStatsService_Refresh_GapFillsFromBaseline(t *testing.T) {
	repo := &fakeStatsRepo{baseline: &models.RuntimeStats{
		TotalHeatingMinutes: 300,
		CycleCount:          12,
		UpdatedAt:           time.Date(2026, 1, 11, 6, 0, 0, 0, time.UTC),
	}}
	svc := NewStatsService(repo)

	// empty series: the cached baseline must survive
	merged, err := svc.Refresh(context.Background(), testTelemetry())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if merged.TotalHeatingMinutes != 300 || merged.CycleCount != 12 {
		t.Fatalf("merged = %+v, want baseline values preserved", merged)
	}
	if repo.baseline.TotalHeatingMinutes != 300 {
		t.Fatalf("persisted baseline lost the gap-filled values")
	}
}

func TestStatsService_Refresh_LoadErrorPropagates(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{loadErr: errors.New("db down")})
	if _, err := svc.Refresh(context.Background(), testTelemetry()); err == nil {
		t.Fatalf("expected load error to propagate")
	}
}

func TestStatsService_Refresh_SaveErrorPropagates(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{saveErr: errors.New("disk full")})
	if _, err := svc.Refresh(context.Background(), telemetryWithSamples(300)); err == nil {
		t.Fatalf("expected save error to propagate")
	}
}

func TestStatsService_Latest(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewStatsService(repo)

	got, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Latest() = %+v, want nil before first refresh", got)
	}

	if _, err := svc.Refresh(context.Background(), telemetryWithSamples(300)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	got, err = svc.Latest(context.Background())
	if err != nil || got == nil {
		t.Fatalf("Latest() = %v, %v; want refreshed baseline", got, err)
	}
}
