package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"furnace_forecast/internal/models"
)

type fakeObservationRepo struct {
	appendErr error
	entries   []models.Observation
	listErr   error
}

func (f *fakeObservationRepo) Append(_ context.Context, o models.Observation) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, o)
	return nil
}

func (f *fakeObservationRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.Observation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Observation
	for _, o := range f.entries {
		if !from.IsZero() && o.ObservedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.ObservedAt.After(to) {
			continue
		}
		if typ != "" && o.Type != typ {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func TestCurveService_Update_RejectsEmptyCurve(t *testing.T) {
	svc := NewCurveService(&fakeCurveRepo{}, &fakeObservationRepo{})
	if err := svc.Update(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty curve")
	}
}

func TestCurveService_Update_RejectsNegativeRate(t *testing.T) {
	svc := NewCurveService(&fakeCurveRepo{}, &fakeObservationRepo{})
	err := svc.Update(context.Background(), []models.CurvePoint{{OutdoorTemp: 10, RatePerMinute: -0.1}})
	if err == nil {
		t.Fatalf("expected error for negative rate")
	}
}

func TestCurveService_Update_ReplacesAndLogsAudit(t *testing.T) {
	curves := &fakeCurveRepo{}
	obs := &fakeObservationRepo{}
	svc := NewCurveService(curves, obs)

	points := []models.CurvePoint{
		{OutdoorTemp: -22, RatePerMinute: 0.18},
		{OutdoorTemp: 50, RatePerMinute: 0.38},
	}
	if err := svc.Update(context.Background(), points); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(curves.replaced) != 1 || len(curves.replaced[0]) != 2 {
		t.Fatalf("expected one wholesale replace with 2 points, got %v", curves.replaced)
	}
	if len(obs.entries) != 1 || obs.entries[0].Type != "CURVE_UPDATE" {
		t.Fatalf("expected CURVE_UPDATE audit entry, got %v", obs.entries)
	}
}

func TestCurveService_Update_ReplaceErrorPropagates(t *testing.T) {
	curves := &fakeCurveRepo{replaceErr: errors.New("db down")}
	obs := &fakeObservationRepo{}
	svc := NewCurveService(curves, obs)

	err := svc.Update(context.Background(), []models.CurvePoint{{OutdoorTemp: 10, RatePerMinute: 0.3}})
	if err == nil {
		t.Fatalf("expected replace error to propagate")
	}
	if len(obs.entries) != 0 {
		t.Fatalf("no audit entry should be written on failure")
	}
}

func TestCurveService_Get(t *testing.T) {
	curves := &fakeCurveRepo{points: []models.CurvePoint{{OutdoorTemp: 10, RatePerMinute: 0.3}}}
	svc := NewCurveService(curves, &fakeObservationRepo{})

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].RatePerMinute != 0.3 {
		t.Fatalf("Get() = %v, want stored points", got)
	}
}
